package ieventrepo

//go:generate mockgen -source=./ieventrepo.go -destination=./mocks/ieventrepo.mock.go -package=eventrepomocks

import (
	"context"

	"github.com/styleaura/storefront/internal/service/models/event"
)

// IEventRepository publishes order events.
type IEventRepository interface {
	Publish(ctx context.Context, events ...event.OrderEvent) error
}
