package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/ridgeline-motors/dealership/api/web"
	"github.com/ridgeline-motors/dealership/api/weberr"
	"github.com/ridgeline-motors/dealership/core/claims"
)

const (
	accountIDKey = "account_id"
	roleKey      = "account_role"
)

// LoadAndSave adapts the session manager's http.Handler middleware to the
// web.Handler signature so it can sit first in the chain.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error

			hd := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))
			hd.ServeHTTP(w, r)

			return err
		}
		return h
	}
	return m
}

// Authenticate requires a logged-in session and stores its claims in the
// context for downstream handlers.
func Authenticate(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := session.GetInt(ctx, accountIDKey)
			if id == 0 {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			ctx = claims.Set(ctx, claims.Claims{
				AccountID: id,
				Role:      session.GetString(ctx, roleKey),
			})

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Staff requires a logged-in Employee or Admin account. The inventory
// management surface sits behind this gate.
func Staff(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := session.GetInt(ctx, accountIDKey)
			if id == 0 {
				return weberr.NotAuthorized(errors.New("user not authenticated"))
			}

			clm := claims.Claims{
				AccountID: id,
				Role:      session.GetString(ctx, roleKey),
			}

			if clm.Role != claims.RoleEmployee && clm.Role != claims.RoleAdmin {
				return weberr.Forbidden(errors.New("account lacks management privileges"))
			}

			return handler(claims.Set(ctx, clm), w, r)
		}
		return h
	}
	return m
}
