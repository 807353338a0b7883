package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail. Without SMTP credentials it
// runs disabled and only logs, so local development never needs a
// mail server.
type EmailService struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewEmailService builds the service from SMTP settings; an empty user
// or password yields the disabled mode.
func NewEmailService(host string, port int, user, pass, from, baseURL string) *EmailService {
	if user == "" || pass == "" {
		log.Println("email: SMTP not configured, sending disabled")
		return &EmailService{from: from, baseURL: baseURL}
	}
	return &EmailService{
		dialer:  gomail.NewDialer(host, port, user, pass),
		from:    from,
		baseURL: baseURL,
	}
}

// SendPasswordReset mails the reset link for the given token.
func (s *EmailService) SendPasswordReset(to, token string) error {
	if s.dialer == nil {
		log.Printf("email: sending disabled, reset token for %s: %s", to, token)
		return nil
	}

	body := fmt.Sprintf(`
		<h2>Restablecer contraseña</h2>
		<p>Para restablecer su contraseña haga clic en el siguiente enlace:</p>
		<p><a href="%s/reset-password?token=%s">Restablecer contraseña</a></p>
		<p>El enlace es válido por una hora. Si usted no solicitó este cambio, ignore este correo.</p>`,
		s.baseURL, token)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Restablecer contraseña - Bordamax Uniformes")
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("services: send reset email: %w", err)
	}
	return nil
}

// SendWelcome greets a newly registered customer.
func (s *EmailService) SendWelcome(to, name string) error {
	if s.dialer == nil {
		log.Printf("email: sending disabled, welcome for %s", to)
		return nil
	}

	body := fmt.Sprintf(`
		<h2>¡Bienvenido!</h2>
		<p>Hola %s, gracias por registrarse en Bordamax Uniformes.</p>
		<p>Ya puede explorar el catálogo de su colegio y realizar pedidos.</p>`, name)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Bienvenido - Bordamax Uniformes")
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("services: send welcome email: %w", err)
	}
	return nil
}
