package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bordamax/tienda-api/internal/auth"
	"github.com/bordamax/tienda-api/internal/models"
)

const resetTokenTTL = time.Hour

type registerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
	IDCard    string `json:"id_card"`

	// Carries the anonymous cart over into the new account.
	GuestID string `json:"guest_id"`
}

// Register creates an account and returns a signed token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	h.DB.Model(&models.UserProfile{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	user := models.UserProfile{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		IDCard:       req.IDCard,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	h.mergeGuestCart(req.GuestID, user.ID)

	go func() {
		if err := h.Email.SendWelcome(user.Email, user.FirstName); err != nil {
			log.Printf("handlers: welcome mail to %s: %v", user.Email, err)
		}
	}()

	h.respondWithToken(c, http.StatusCreated, &user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	GuestID  string `json:"guest_id"`
}

// Login checks credentials, merges any guest cart and returns a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.UserProfile
	err := h.DB.Where("email = ?", req.Email).First(&user).Error
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	h.mergeGuestCart(req.GuestID, user.ID)
	h.respondWithToken(c, http.StatusOK, &user)
}

// Me returns the authenticated user's profile with addresses.
func (h *Handler) Me(c *gin.Context) {
	var user models.UserProfile
	err := h.DB.Preload("Addresses").First(&user, "id = ?", auth.UserIDFrom(c)).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword issues a reset token and mails it. Responds 200 even
// for unknown emails so the endpoint cannot be used to enumerate
// accounts.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok := gin.H{"message": "if the account exists, a reset email was sent"}

	var user models.UserProfile
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, ok)
		return
	}

	token, err := randomToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue reset token"})
		return
	}
	expires := time.Now().Add(resetTokenTTL)
	err = h.DB.Model(&user).Updates(map[string]any{
		"reset_token":         token,
		"reset_token_expires": expires,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue reset token"})
		return
	}

	go func() {
		if err := h.Email.SendPasswordReset(user.Email, token); err != nil {
			log.Printf("handlers: reset mail to %s: %v", user.Email, err)
		}
	}()
	c.JSON(http.StatusOK, ok)
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPassword consumes a reset token and sets the new password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.UserProfile
	err := h.DB.Where("reset_token = ? AND reset_token_expires > ?", req.Token, time.Now()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired reset token"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	err = h.DB.Model(&user).Updates(map[string]any{
		"password_hash":       hash,
		"reset_token":         "",
		"reset_token_expires": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user *models.UserProfile) {
	token, err := auth.IssueToken(h.Config.JWTSecret, user, h.Config.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}
	c.JSON(status, gin.H{"token": token, "user": user})
}

func (h *Handler) mergeGuestCart(guestID, userID string) {
	if guestID == "" {
		return
	}
	if err := h.Carts.MergeGuestCart(guestID, userID); err != nil {
		log.Printf("handlers: merge guest cart %s: %v", guestID, err)
	}
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
