package iorderrepo

//go:generate mockgen -source=./iorderrepo.go -destination=./mocks/iorderrepo.mock.go -package=orderrepomocks

import (
	"context"

	"github.com/styleaura/storefront/internal/service/models/order"
)

// IOrderRepository is an interface for the order store.
type IOrderRepository interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
	Get(ctx context.Context, id string) (order.Order, error)
	List(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id string, upd order.StatusUpdate) error
}
