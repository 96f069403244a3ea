package email

//go:generate mockgen -source=./email.go -destination=./mocks/email.mock.go -package=emailmocks Sender

import (
	"context"
	"errors"
)

// ErrAllFailed is returned by composite senders when no provider delivered the mail.
var ErrAllFailed = errors.New("all email providers failed")

// Attachment is a file attached to a mail.
type Attachment struct {
	Filename string
	Content  []byte
}

// Mail is a transactional HTML email.
type Mail struct {
	FromName    string
	From        string
	To          string
	ToName      string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers mails through one provider.
type Sender interface {
	SendMail(ctx context.Context, mail Mail) error
}
