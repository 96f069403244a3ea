package adminsession

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/styleaura/storefront/internal/service/services/adminsvc"
	"github.com/styleaura/storefront/internal/transport/http/response"
)

const defaultCookieName = "storefront_session"

type service interface {
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	IsAdmin(ctx context.Context, token string) (bool, error)
	SessionTTL() time.Duration
}

// Cookie describes the session cookie handed to the admin's browser.
type Cookie struct {
	Name   string
	Secure bool
}

// CookieFromConfig reads session.cookie_name and session.cookie_secure.
func CookieFromConfig() Cookie {
	name := viper.GetString("session.cookie_name")
	if name == "" {
		name = defaultCookieName
	}

	return Cookie{Name: name, Secure: viper.GetBool("session.cookie_secure")}
}

func (c Cookie) token(r *http.Request) string {
	cookie, err := r.Cookie(c.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func (c Cookie) write(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type checkResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// Login opens an admin session and sets the session cookie.
func Login(w http.ResponseWriter, r *http.Request, service service, cookie Cookie) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body.")
		slog.Error("Error decoding request body for login", "error", err)

		return
	}

	token, err := service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, adminsvc.ErrInvalidCredentials) {
		response.Error(w, http.StatusUnauthorized, "Invalid credentials.")
		slog.Warn("Rejected admin login", "remote_addr", r.RemoteAddr)

		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Login failed.")
		slog.Error("Error opening admin session", "error", err)

		return
	}

	cookie.write(w, token, int(service.SessionTTL().Seconds()))
	response.Success(w)
}

// Logout ends the session and expires the cookie.
func Logout(w http.ResponseWriter, r *http.Request, service service, cookie Cookie) {
	if err := service.Logout(r.Context(), cookie.token(r)); err != nil {
		response.Error(w, http.StatusInternalServerError, "Logout failed.")
		slog.Error("Error closing admin session", "error", err)

		return
	}

	cookie.write(w, "", -1)
	response.Success(w)
}

// Check reports whether the request carries a live admin session.
func Check(w http.ResponseWriter, r *http.Request, service service, cookie Cookie) {
	ok, err := service.IsAdmin(r.Context(), cookie.token(r))
	if err != nil {
		slog.Error("Error checking admin session", "error", err)
	}

	response.JSON(w, http.StatusOK, checkResponse{IsAdmin: ok && err == nil})
}

// RequireAdmin rejects requests without a live admin session.
func RequireAdmin(service service, cookie Cookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := service.IsAdmin(r.Context(), cookie.token(r))
			if err != nil {
				response.Error(w, http.StatusInternalServerError, "Failed to verify session.")
				slog.Error("Error checking admin session", "error", err)

				return
			}
			if !ok {
				response.Error(w, http.StatusUnauthorized, "Unauthorized.")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
