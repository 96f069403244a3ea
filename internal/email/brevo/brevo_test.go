package brevo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/styleaura/storefront/internal/email"
)

func TestClient_SendMail(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/smtp/email", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<1@brevo>"}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	err := c.SendMail(context.Background(), email.Mail{
		FromName: "StyleAura",
		From:     "shop@example.com",
		To:       "asha@example.com",
		ToName:   "Asha",
		Subject:  "Order Confirmation - StyleAura",
		HTML:     "<p>hi</p>",
		Attachments: []email.Attachment{
			{Filename: "invoice.pdf", Content: []byte("%PDF-1.3")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "StyleAura", got.Sender.Name)
	assert.Equal(t, []contact{{Email: "asha@example.com", Name: "Asha"}}, got.To)
	require.Len(t, got.Attachment, 1)
	assert.Equal(t, "invoice.pdf", got.Attachment[0].Name)
	decoded, err := base64.StdEncoding.DecodeString(got.Attachment[0].Content)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), decoded)
}

func TestClient_AddContact(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "created", status: http.StatusCreated, body: `{"id":42}`},
		{name: "updated without body", status: http.StatusNoContent},
		{name: "rejected", status: http.StatusBadRequest, body: `{"code":"invalid_parameter","message":"email is not valid"}`, wantErr: ErrRequestFailed},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got contactRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v3/contacts", r.URL.Path)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tc.status)
				if tc.body != "" {
					_, _ = w.Write([]byte(tc.body))
				}
			}))
			defer srv.Close()

			err := NewClient("secret", WithBaseURL(srv.URL)).
				AddContact(context.Background(), "asha@example.com", []int64{2})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, contactRequest{Email: "asha@example.com", ListIDs: []int64{2}, UpdateEnabled: true}, got)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient("secret", WithBaseURL(url)).SendMail(context.Background(), email.Mail{To: "a@example.com"})
	assert.Error(t, err)
}
