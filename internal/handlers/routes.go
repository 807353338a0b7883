package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bordamax/tienda-api/internal/auth"
)

// Router builds the Gin engine with every route and middleware wired.
func (h *Handler) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
	}))

	secret := h.Config.JWTSecret

	api := r.Group("/api")

	// Public storefront.
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/forgot-password", h.ForgotPassword)
	api.POST("/auth/reset-password", h.ResetPassword)
	api.GET("/schools", h.ListSchools)
	api.GET("/products", auth.OptionalAuth(secret), h.Catalog)
	api.GET("/media/:id/file", h.ServeMedia)

	// Anonymous carts, keyed by a client-generated guest id.
	api.GET("/guest-cart/:guestId", h.GetGuestCart)
	api.PUT("/guest-cart/:guestId/items", h.SetGuestCartItem)

	// Signed-in customers.
	user := api.Group("", auth.RequireAuth(secret))
	user.GET("/me", h.Me)
	user.GET("/addresses", h.ListAddresses)
	user.POST("/addresses", h.CreateAddress)
	user.PUT("/addresses/:id", h.UpdateAddress)
	user.DELETE("/addresses/:id", h.DeleteAddress)
	user.POST("/affiliations", h.RequestAffiliation)
	user.GET("/cart", h.GetCart)
	user.PUT("/cart/items", h.SetCartItem)
	user.DELETE("/cart/items/:productId", h.RemoveCartItem)
	user.DELETE("/cart", h.ClearCart)
	user.POST("/cart/merge/:guestId", h.MergeGuestCart)
	user.POST("/orders", h.Checkout)
	user.GET("/orders/mine", h.MyOrders)
	user.GET("/orders/:id", h.GetOrder)
	user.GET("/orders/:id/document", h.OrderDocument)

	// Staff back office.
	staff := api.Group("/admin", auth.RequireAuth(secret), auth.RequireStaff())
	staff.GET("/orders", h.ListOrders)
	staff.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	staff.GET("/affiliations", h.ListAffiliations)
	staff.PATCH("/affiliations/:id", h.DecideAffiliation)
	staff.POST("/products", h.CreateProduct)
	staff.PUT("/products/:id", h.UpdateProduct)
	staff.DELETE("/products/:id", h.DeleteProduct)
	staff.GET("/products/export", h.ExportProducts)
	staff.GET("/media", h.ListMedia)
	staff.POST("/media", h.UploadMedia)
	staff.DELETE("/media/:id", h.DeleteMedia)
	staff.GET("/orders/feed", h.OrderFeed)

	// Schools and document settings are managed by admins only.
	admin := api.Group("/admin", auth.RequireAuth(secret), auth.RequireAdmin())
	admin.POST("/schools", h.CreateSchool)
	admin.PUT("/schools/:id", h.UpdateSchool)
	admin.DELETE("/schools/:id", h.DeleteSchool)
	admin.GET("/pdf-config", h.GetPdfConfig)
	admin.PUT("/pdf-config", h.UpdatePdfConfig)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// OrderFeed upgrades the connection to a websocket pushing live order
// events to the admin panel.
func (h *Handler) OrderFeed(c *gin.Context) {
	if err := h.Hub.Subscribe(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "websocket upgrade failed"})
	}
}
