package services

import (
	"fmt"
	"log"
	"net/smtp"

	"muni-votaciones/internal/config"
)

// MailerService sends account notification emails. All sends are
// best-effort: a failed send is logged and swallowed so the primary
// operation (account creation, password reset) still succeeds.
type MailerService struct {
	cfg     config.SMTPConfig
	enabled bool
}

// NewMailerService creates a new mailer service
func NewMailerService(cfg config.SMTPConfig) *MailerService {
	return &MailerService{
		cfg:     cfg,
		enabled: cfg.Host != "",
	}
}

// IsEnabled checks if the mailer is configured
func (s *MailerService) IsEnabled() bool {
	return s.enabled
}

// send delivers a plain-text message to a single recipient.
func (s *MailerService) send(to, subject, body string) error {
	if !s.enabled {
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// NotifyAccountCreated emails the temporary password to a new account.
func (s *MailerService) NotifyAccountCreated(to, nombre, usuario, tempPassword string) {
	body := fmt.Sprintf(`Hola %s,

Se ha creado tu cuenta en el sistema de votaciones del presupuesto participativo.

Usuario: %s
Contraseña temporal: %s

Por seguridad, cambia tu contraseña al iniciar sesión por primera vez.`,
		nombre, usuario, tempPassword)

	if err := s.send(to, "Cuenta creada - Votaciones Presupuesto Participativo", body); err != nil {
		log.Printf("⚠️ Failed to send account-created email to %s: %v", to, err)
	}
}

// NotifyPasswordReset emails a freshly generated temporary password.
func (s *MailerService) NotifyPasswordReset(to, nombre, tempPassword string) {
	body := fmt.Sprintf(`Hola %s,

Tu contraseña fue restablecida por un administrador.

Contraseña temporal: %s

Por seguridad, cambia tu contraseña al iniciar sesión.`,
		nombre, tempPassword)

	if err := s.send(to, "Contraseña restablecida - Votaciones", body); err != nil {
		log.Printf("⚠️ Failed to send password-reset email to %s: %v", to, err)
	}
}

// NotifyPasswordChanged confirms a self-service password change.
func (s *MailerService) NotifyPasswordChanged(to, nombre string) {
	body := fmt.Sprintf(`Hola %s,

Tu contraseña fue cambiada correctamente. Si no realizaste este cambio, contacta al administrador de inmediato.`,
		nombre)

	if err := s.send(to, "Contraseña cambiada - Votaciones", body); err != nil {
		log.Printf("⚠️ Failed to send password-changed email to %s: %v", to, err)
	}
}
