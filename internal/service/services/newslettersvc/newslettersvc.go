package newslettersvc

import (
	"context"
	"errors"
	"strings"
)

var ErrEmailRequired = errors.New("email required")

type contacts interface {
	AddContact(ctx context.Context, email string, listIDs []int64) error
}

// NewsletterService subscribes addresses to the marketing lists.
type NewsletterService struct {
	contacts contacts
	listIDs  []int64
}

func NewNewsletterService(contacts contacts, listIDs []int64) *NewsletterService {
	if len(listIDs) == 0 {
		listIDs = []int64{2}
	}

	return &NewsletterService{contacts: contacts, listIDs: listIDs}
}

// Subscribe creates or updates the contact. Subscribing twice is not an error.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}

	return s.contacts.AddContact(ctx, email, s.listIDs)
}
