package getanalytics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/styleaura/storefront/internal/service/models/analytics"
)

type serviceFunc func(ctx context.Context) (analytics.Analytics, error)

func (f serviceFunc) Analytics(ctx context.Context) (analytics.Analytics, error) {
	return f(ctx)
}

func TestGetAnalytics(t *testing.T) {
	rec := httptest.NewRecorder()
	svc := serviceFunc(func(context.Context) (analytics.Analytics, error) {
		return analytics.Analytics{
			TotalOrders:  2,
			TotalSales:   45,
			StatusCount:  map[string]int{"Pending": 2},
			TopProducts:  []analytics.ProductSales{{Name: "Cap", Quantity: 3}},
			DisplaySales: 3758,
			Currency:     "INR",
		}, nil
	})

	GetAnalytics(rec, httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil), svc)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalOrders":2,"totalSales":45,"statusCount":{"Pending":2},
		"topProducts":[{"name":"Cap","quantity":3}],"displaySales":3758,"currency":"INR"}`, rec.Body.String())
}

func TestGetAnalytics_Failure(t *testing.T) {
	rec := httptest.NewRecorder()
	svc := serviceFunc(func(context.Context) (analytics.Analytics, error) {
		return analytics.Analytics{}, errors.New("db down")
	})

	GetAnalytics(rec, httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil), svc)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
