package isessionrepo

//go:generate mockgen -source=./isessionrepo.go -destination=./mocks/isessionrepo.mock.go -package=sessionrepomocks

import (
	"context"
	"time"
)

// ISessionRepository stores admin sessions keyed by an opaque token.
type ISessionRepository interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}
