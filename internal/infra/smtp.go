package infra

import (
	"fmt"
	"net/smtp"

	"github.com/infogpstech/GPSpedia2.0/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends problem-report notifications to the supervisor list.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendReporte sends a plain-text notification to every recipient at once.
func (m *Mailer) SendReporte(destinatarios []string, asunto, cuerpo string) error {
	if len(destinatarios) == 0 {
		return fmt.Errorf("mailer: sin destinatarios configurados")
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = destinatarios
	e.Subject = asunto
	e.Text = []byte(cuerpo)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
