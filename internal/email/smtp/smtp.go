package smtp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/styleaura/storefront/internal/email"
	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender delivers mail over SMTP, one connection per message.
type Sender struct {
	d dialer
}

func NewSender(d dialer) *Sender {
	return &Sender{d: d}
}

// MustNewSenderFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER and SMTP_PASS.
func MustNewSenderFromEnv() *Sender {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		panic(fmt.Sprintf("invalid SMTP_PORT: %v", err))
	}

	return NewSender(gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	))
}

func (s *Sender) SendMail(ctx context.Context, m email.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.From, m.FromName)
	msg.SetAddressHeader("To", m.To, m.ToName)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)
	for _, a := range m.Attachments {
		content := a.Content
		msg.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)

			return err
		}))
	}

	if err := s.d.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	return nil
}
