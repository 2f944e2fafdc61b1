// File: internal/infrastructure/email/smtp_sender.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
)

// Sender dispatches transactional mail for the identity service.
type Sender interface {
	SendPasswordResetEmail(ctx context.Context, to, token, username string, tokenTTL time.Duration) error
}

// Client представляет клиент для отправки email через SMTP.
type Client struct {
	config config.EmailConfig
	logger *zap.Logger
}

// NewClient создает новый клиент для отправки email.
func NewClient(cfg config.EmailConfig, logger *zap.Logger) *Client {
	return &Client{config: cfg, logger: logger}
}

var passwordResetTemplate = template.Must(template.New("password-reset").Parse(`<html>
<body>
  <p>Hello {{.Username}},</p>
  <p>We received a request to reset the password for your Withfy account.</p>
  <p><a href="{{.ResetLink}}">Reset your password</a></p>
  <p>Or paste this token into the reset form: <code>{{.Token}}</code></p>
  <p>The link expires in {{.ExpirationTime}}. If you did not request a reset,
  you can safely ignore this email.</p>
</body>
</html>`))

// formatDuration renders a token lifetime the way the reset email shows it.
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%d hour(s) and %d minute(s)", hours, minutes)
	}
	return fmt.Sprintf("%d minute(s)", minutes)
}

// SendPasswordResetEmail отправляет письмо со ссылкой для сброса пароля.
func (c *Client) SendPasswordResetEmail(ctx context.Context, to, token, username string, tokenTTL time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var body bytes.Buffer
	err := passwordResetTemplate.Execute(&body, map[string]string{
		"Username":       username,
		"Token":          token,
		"ResetLink":      fmt.Sprintf("%s/reset-password?token=%s", c.config.FrontendURL, token),
		"ExpirationTime": formatDuration(tokenTTL),
	})
	if err != nil {
		return fmt.Errorf("failed to render password reset template: %w", err)
	}

	return c.send(to, "Password Reset Request for Your Withfy Account", body.String())
}

func (c *Client) send(to, subject, htmlBody string) error {
	var message bytes.Buffer
	message.WriteString(fmt.Sprintf("From: %s\r\n", c.config.From))
	message.WriteString(fmt.Sprintf("To: %s\r\n", to))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	message.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	message.WriteString("\r\n")
	message.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)
	auth := smtp.PlainAuth("", c.config.Username, c.config.Password, c.config.Host)

	if err := smtp.SendMail(addr, auth, c.config.From, []string{to}, message.Bytes()); err != nil {
		c.logger.Error("Failed to send email", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info("Email sent successfully", zap.String("to", to), zap.String("subject", subject))
	return nil
}
