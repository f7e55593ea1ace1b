package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"pricelist/internal/domain/session"
)

// TokenHeader is the primary way clients transmit the session token.
// The query parameter is accepted as a fallback for clients that cannot
// set headers.
const (
	TokenHeader = "X-Session-Token"
	TokenQuery  = "sessionToken"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const UsernameKey contextKey = "username"

// Middleware validates the session token on every request and rejects
// with 401 when the portal no longer recognizes it.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := ctx.Header(TokenHeader)
		if token == "" {
			token = ctx.Query(TokenQuery)
		}

		username, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Debug("rejected request", "path", ctx.URL().Path, "error", err)
			writeUnauthorized(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), UsernameKey, username)
		next(huma.WithContext(ctx, newCtx))
	}
}

func writeUnauthorized(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	})
}

func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
