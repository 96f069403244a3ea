package downloadinvoice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/styleaura/storefront/internal/service/models/order"
)

type serviceFunc func(ctx context.Context, id string) ([]byte, error)

func (f serviceFunc) Invoice(ctx context.Context, id string) ([]byte, error) {
	return f(ctx, id)
}

func serve(svc service, id string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/admin/orders/{id}/invoice", func(w http.ResponseWriter, r *http.Request) {
		DownloadInvoice(w, r, svc)
	})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/"+id+"/invoice", nil))

	return rec
}

func TestDownloadInvoice(t *testing.T) {
	svc := serviceFunc(func(_ context.Context, id string) ([]byte, error) {
		switch id {
		case "missing":
			return nil, order.ErrNotFound
		case "broken":
			return nil, errors.New("renderer offline")
		}

		return []byte("%PDF-1.3"), nil
	})

	rec := serve(svc, "abc")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-abc.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(svc, "missing").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(svc, "broken").Code)
}
