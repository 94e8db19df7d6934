package notify

import (
	"time"

	gomail "gopkg.in/mail.v2"

	"github.com/shanehull/bultentakip/internal/config"
)

const implicitTLSPort = 465

// Dialer is the part of gomail.Dialer the sender uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg    config.EmailConfig
	dialer Dialer
}

// NewEmailSender creates a sender with the given SMTP configuration. Ports
// other than 465 must upgrade with STARTTLS before authenticating.
func NewEmailSender(cfg config.EmailConfig) *EmailSender {
	dialer := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second
	if cfg.SMTPPort != implicitTLSPort {
		dialer.StartTLSPolicy = gomail.MandatoryStartTLS
	}
	return NewEmailSenderWithDialer(cfg, dialer)
}

func NewEmailSenderWithDialer(cfg config.EmailConfig, dialer Dialer) *EmailSender {
	return &EmailSender{cfg: cfg, dialer: dialer}
}

// Send delivers an email with HTML body and plain text fallback.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.SMTPUser)
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}

	return s.dialer.DialAndSend(m)
}
