package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jobgate/jobgate-backend/config"
	"github.com/sirupsen/logrus"
)

// Mailer sends plain-text mail over SMTP. With Enabled=false the message is
// only logged, which keeps local development off real mail servers.
type Mailer struct {
	cfg *config.EmailConfig
}

func NewMailer(cfg *config.EmailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.cfg.Enabled {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email sending disabled, message logged only")
		return nil
	}

	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.cfg.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email sent")
	return nil
}
