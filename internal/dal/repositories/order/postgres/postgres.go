package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/styleaura/storefront/internal/service/models/order"
)

var orderColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"address",
	"city",
	"state",
	"zip",
	"total",
	"status",
	"payment_status",
	"created_at",
	"updated_at",
}

var itemColumns = []string{"order_id", "position", "name", "price", "quantity"}

// OrderDal represents order data access layer model
type OrderDal struct {
	Id            string    `db:"id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	Address       string    `db:"address"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	Zip           string    `db:"zip"`
	Total         float64   `db:"total"`
	Status        string    `db:"status"`
	PaymentStatus string    `db:"payment_status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() order.Order {
	return order.Order{
		ID:            o.Id,
		Name:          o.Name,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		City:          o.City,
		State:         o.State,
		Zip:           o.Zip,
		Total:         o.Total,
		Status:        order.ShippingStatus(o.Status),
		PaymentStatus: order.PaymentStatus(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Items:         []order.LineItem{}, // Will be populated separately
	}
}

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	OrderId  string  `db:"order_id"`
	Position int     `db:"position"`
	Name     string  `db:"name"`
	Price    float64 `db:"price"`
	Quantity int     `db:"quantity"`
}

// ToModel converts OrderItemDal to service layer LineItem model.
func (oi *OrderItemDal) ToModel() order.LineItem {
	return order.LineItem{
		Name:     oi.Name,
		Price:    oi.Price,
		Quantity: oi.Quantity,
	}
}

// PostgresOrderRepository stores orders in the orders and order_items tables.
type PostgresOrderRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts the order and its items in one transaction.
func (r *PostgresOrderRepository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	o.ID = uuid.NewString()
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := r.sb.Insert("orders").
		Columns(orderColumns...).
		Values(
			o.ID,
			o.Name,
			o.Email,
			o.Phone,
			o.Address,
			o.City,
			o.State,
			o.Zip,
			o.Total,
			o.Status.String(),
			o.PaymentStatus.String(),
			o.CreatedAt,
			o.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	if len(o.Items) > 0 {
		itemsInsert := r.sb.Insert("order_items").Columns(itemColumns...)
		for i, item := range o.Items {
			itemsInsert = itemsInsert.Values(o.ID, i, item.Name, item.Price, item.Quantity)
		}
		query, args, err = itemsInsert.ToSql()
		if err != nil {
			return order.Order{}, fmt.Errorf("failed to build items insert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return order.Order{}, fmt.Errorf("failed to insert order items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return o, nil
}

// Get returns a single order with its items.
func (r *PostgresOrderRepository) Get(ctx context.Context, id string) (order.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return order.Order{}, order.ErrInvalidID
	}

	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build query: %w", err)
	}

	var dal OrderDal
	if err := sqlx.GetContext(ctx, r.db, &dal, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return order.Order{}, order.ErrNotFound
		}

		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	orders := []order.Order{dal.ToModel()}
	if err := r.attachItems(ctx, orders); err != nil {
		return order.Order{}, err
	}

	return orders[0], nil
}

// List retrieves orders matching the filter, most recent first.
func (r *PostgresOrderRepository) List(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.Select(orderColumns...).From("orders")

	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.PaymentStatus != "" {
		query = query.Where(sq.Eq{"payment_status": filter.PaymentStatus.String()})
	}
	if !filter.From.IsZero() {
		query = query.Where(sq.GtOrEq{"created_at": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(sq.LtOrEq{"created_at": filter.To})
	}

	sqlStr, args, err := query.OrderBy("created_at DESC", "id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dals []OrderDal
	if err := sqlx.SelectContext(ctx, r.db, &dals, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders := make([]order.Order, len(dals))
	for i := range dals {
		orders[i] = dals[i].ToModel()
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus sets the provided status fields of one order.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id string,
	upd order.StatusUpdate,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return order.ErrInvalidID
	}

	if upd.Empty() {
		return r.ensureExists(ctx, id)
	}

	query := r.sb.Update("orders").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	if upd.Status != nil {
		query = query.Set("status", upd.Status.String())
	}
	if upd.PaymentStatus != nil {
		query = query.Set("payment_status", upd.PaymentStatus.String())
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return order.ErrNotFound
	}

	return nil
}

func (r *PostgresOrderRepository) ensureExists(ctx context.Context, id string) error {
	sqlStr, args, err := r.sb.Select("1").From("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	var one int
	if err := r.db.QueryRowxContext(ctx, sqlStr, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return order.ErrNotFound
		}

		return fmt.Errorf("failed to check order: %w", err)
	}

	return nil
}

// attachItems loads the items of all given orders with a single query.
func (r *PostgresOrderRepository) attachItems(ctx context.Context, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	sqlStr, args, err := r.sb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("order_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build items query: %w", err)
	}

	var dals []OrderItemDal
	if err := sqlx.SelectContext(ctx, r.db, &dals, sqlStr, args...); err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}

	for i := range dals {
		if idx, ok := index[dals[i].OrderId]; ok {
			orders[idx].Items = append(orders[idx].Items, dals[i].ToModel())
		}
	}

	return nil
}
