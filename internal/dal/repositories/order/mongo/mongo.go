package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/styleaura/storefront/internal/service/models/order"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	order.Order `bson:",inline"`
}

func (d *orderDoc) toModel() order.Order {
	o := d.Order
	o.ID = d.ID.Hex()
	if o.Items == nil {
		o.Items = []order.LineItem{}
	}

	return o
}

// MongoOrderRepository stores orders as documents with embedded items.
type MongoOrderRepository struct {
	coll *mongo.Collection
}

// NewMongoOrderRepository creates a repository over the given collection.
func NewMongoOrderRepository(coll *mongo.Collection) *MongoOrderRepository {
	return &MongoOrderRepository{coll: coll}
}

func (r *MongoOrderRepository) Create(ctx context.Context, o order.Order) (order.Order, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	o.CreatedAt = now
	o.UpdatedAt = now

	doc := orderDoc{ID: primitive.NewObjectID(), Order: o}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoOrderRepository) Get(ctx context.Context, id string) (order.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return order.Order{}, order.ErrInvalidID
	}

	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return order.Order{}, order.ErrNotFound
		}

		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoOrderRepository) List(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status.String()
	}
	if filter.PaymentStatus != "" {
		query["paymentStatus"] = filter.PaymentStatus.String()
	}
	created := bson.M{}
	if !filter.From.IsZero() {
		created["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		created["$lte"] = filter.To
	}
	if len(created) > 0 {
		query["createdAt"] = created
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]order.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, docs[i].toModel())
	}

	return orders, nil
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, upd order.StatusUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return order.ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Status != nil {
		set["status"] = upd.Status.String()
	}
	if upd.PaymentStatus != nil {
		set["paymentStatus"] = upd.PaymentStatus.String()
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return order.ErrNotFound
	}

	return nil
}
