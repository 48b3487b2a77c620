package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/ridgeline-motors/dealership/api/middleware"
	"github.com/ridgeline-motors/dealership/api/web"
	"github.com/ridgeline-motors/dealership/core/account"
	"github.com/ridgeline-motors/dealership/core/auth"
	"github.com/ridgeline-motors/dealership/core/cart"
	"github.com/ridgeline-motors/dealership/core/inventory"
	"github.com/ridgeline-motors/dealership/core/upgrade"
	"github.com/ridgeline-motors/dealership/rate"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin string
	Log        logrus.FieldLogger
	DB         *sqlx.DB
	Session    *scs.SessionManager
	Limiter    *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	authen := auth.Authenticate(cfg.Session)
	staff := auth.Staff(cfg.Session)

	var limited web.Middleware
	if cfg.Limiter != nil {
		limited = middleware.RateLimit(cfg.Limiter)
	}

	a.Handle(http.MethodPost, "/auth/signup", auth.HandleSignup(cfg.DB, cfg.Session), limited)
	a.Handle(http.MethodPost, "/auth/login", auth.HandleLogin(cfg.DB, cfg.Session), limited)
	a.Handle(http.MethodPost, "/auth/logout", auth.HandleLogout(cfg.Session))

	a.Handle(http.MethodGet, "/accounts/current", account.HandleShowCurrent(cfg.DB), authen)
	a.Handle(http.MethodPut, "/accounts/current", account.HandleUpdate(cfg.DB), authen)
	a.Handle(http.MethodPut, "/accounts/current/password", account.HandleUpdatePassword(cfg.DB), authen)

	a.Handle(http.MethodGet, "/classifications", inventory.HandleListClassifications(cfg.DB))
	a.Handle(http.MethodPost, "/classifications", inventory.HandleCreateClassification(cfg.DB), staff)
	a.Handle(http.MethodGet, "/classifications/{classification_id}/vehicles", inventory.HandleListByClassification(cfg.DB))

	a.Handle(http.MethodGet, "/vehicles/{id}/upgrades", upgrade.HandleListByVehicle(cfg.DB))
	a.Handle(http.MethodGet, "/vehicles/{id}", inventory.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/vehicles", inventory.HandleCreate(cfg.DB), staff)
	a.Handle(http.MethodPut, "/vehicles/{id}", inventory.HandleUpdate(cfg.DB), staff)
	a.Handle(http.MethodDelete, "/vehicles/{id}", inventory.HandleDelete(cfg.DB), staff)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart", cart.HandleClear(cfg.DB), authen)
	a.Handle(http.MethodGet, "/cart/count", cart.HandleCount(cfg.DB), authen)
	a.Handle(http.MethodPut, "/cart/lines", cart.HandleAddLine(cfg.DB), authen)
	a.Handle(http.MethodPut, "/cart/lines/{id}", cart.HandleUpdateQuantity(cfg.DB), authen)
	a.Handle(http.MethodDelete, "/cart/lines/{id}", cart.HandleRemoveLine(cfg.DB), authen)

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
