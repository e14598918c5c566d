package notify

import (
	"context"
	"crypto/tls"

	"github.com/go-gomail/gomail"
)

type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	FromName           string
	FromAddress        string
	InsecureSkipVerify bool
}

// SMTPMailer delivers messages from one fixed sender.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	fromName string
	fromAddr string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.InsecureSkipVerify {
		d.TLSConfig = &tls.Config{ServerName: cfg.Host, InsecureSkipVerify: true}
	}
	from := cfg.FromAddress
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{dialer: d, fromName: cfg.FromName, fromAddr: from}
}

func (m *SMTPMailer) newMessage(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.fromAddr, m.fromName)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return gm
}

// Send dials the server and delivers msg. gomail has no context support, so
// ctx is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(m.newMessage(msg))
}

// Verify checks that the server accepts the configured credentials.
func (m *SMTPMailer) Verify() error {
	sc, err := m.dialer.Dial()
	if err != nil {
		return err
	}
	return sc.Close()
}
