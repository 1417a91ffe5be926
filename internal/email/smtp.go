// Package email sends transactional mail over SMTP. Delivery is best
// effort: callers on the primary onboarding path log failures and continue.
package email

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Sender delivers a single message.
type Sender interface {
	Send(to, subject, htmlBody string) error
	Enabled() bool
}

// SMTPConfig holds the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	cfg    SMTPConfig
	logger *log.Logger
}

// NewSMTP returns a Sender backed by a plain-auth SMTP relay. With no host
// configured the sender reports disabled and drops messages.
func NewSMTP(cfg SMTPConfig, logger *log.Logger) Sender {
	return &smtpSender{cfg: cfg, logger: logger}
}

func (s *smtpSender) Enabled() bool {
	return s.cfg.Host != ""
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	if !s.Enabled() {
		s.logger.Printf("email: smtp not configured, dropping message to=%s subject=%q", to, subject)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(b.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// WelcomeBody renders the onboarding invitation sent when a customer is
// created.
func WelcomeBody(businessName, link string) string {
	return fmt.Sprintf(`<html><body>
<h2>Welcome to BossBoarding, %s!</h2>
<p>Your onboarding has been set up. Use your personal link below to get
started &mdash; your progress saves automatically, so you can stop and resume
any time.</p>
<p><a href="%s">%s</a></p>
</body></html>`, businessName, link, link)
}
