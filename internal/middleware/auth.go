package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"

	"github.com/kpapadakis/bookkeeper-backend/internal/models"
	"github.com/kpapadakis/bookkeeper-backend/pkg/logger"
)

// userProvisioner resolves a verified identity to a stored user,
// creating it with the default staff role on first sight.
type userProvisioner interface {
	EnsureUser(ctx context.Context, uid, email string) (*models.User, error)
}

type Middleware struct {
	AuthClient *auth.Client
	Users      userProvisioner
}

func NewMiddleware(client *auth.Client, users userProvisioner) *Middleware {
	return &Middleware{AuthClient: client, Users: users}
}

// Identity is the authenticated caller plus their stored role.
type Identity struct {
	UID   string
	Email string
	Role  string
}

// context key
type contextKey string

const identityKey contextKey = "identity"

// FirebaseAuth verifies the bearer token, lazily provisions the user
// document and stashes the identity in the request context.
func (m *Middleware) FirebaseAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		tokenStr := parts[1]

		// Verify ID Token
		token, err := m.AuthClient.VerifyIDToken(r.Context(), tokenStr)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		email, _ := token.Claims["email"].(string)
		user, err := m.Users.EnsureUser(r.Context(), token.UID, email)
		if err != nil {
			http.Error(w, "failed to resolve user", http.StatusInternalServerError)
			return
		}

		_, ctx := logger.With(r.Context(), "uid", user.UID, "role", user.Role)
		ctx = WithIdentity(ctx, Identity{
			UID:   user.UID,
			Email: user.Email,
			Role:  user.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates the admin-only surface: category mutation,
// transaction delete, schedules and exports.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if From(r.Context()).Role != models.RoleAdmin {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithIdentity stashes the identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// From extracts the identity; zero value when unauthenticated.
func From(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

// UID is a convenience accessor for handlers.
func UID(ctx context.Context) string {
	return From(ctx).UID
}
