package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ridgeline-motors/dealership/api/web"
	"github.com/ridgeline-motors/dealership/api/weberr"
	"github.com/ridgeline-motors/dealership/core/claims"
	"github.com/ridgeline-motors/dealership/core/upgrade"
	"github.com/ridgeline-motors/dealership/validate"
	"github.com/shopspring/decimal"
)

// foreignKeyViolation is the postgres error code raised when an insert
// references an unknown vehicle or upgrade.
const foreignKeyViolation = "23503"

func HandleShow(db sqlx.ExtContext) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		lines, err := FetchLines(ctx, db, clm.AccountID)
		if err != nil {
			return fmt.Errorf("fetching cart lines: %w", err)
		}

		// The total is informational; if it cannot be computed the cart
		// still renders, showing zero, same as the count badge.
		total, err := Total(ctx, db, clm.AccountID)
		if err != nil {
			total = decimal.Zero
		}

		return web.Respond(ctx, w, Cart{Lines: lines, Total: total}, http.StatusOK)
	}
}

func HandleAddLine(db sqlx.ExtContext) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var nl LineNew
		if err := web.Decode(w, r, &nl); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding cart line: %w", err))
		}

		if err := validate.Check(nl); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		// An upgrade line must reference an upgrade offered for that very
		// vehicle; the foreign keys alone cannot enforce the pairing.
		if nl.UpgradeID != nil {
			u, err := upgrade.Fetch(ctx, db, *nl.UpgradeID)
			if err != nil {
				if errors.Is(err, upgrade.ErrNotFound) {
					err := errors.New("unknown vehicle or upgrade")
					return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
				}
				return fmt.Errorf("fetching upgrade[%d]: %w", *nl.UpgradeID, err)
			}
			if u.VehicleID != nl.VehicleID {
				err := fmt.Errorf("upgrade[%d] is not offered for vehicle[%d]", u.ID, nl.VehicleID)
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
		}

		ln, err := Add(ctx, db, clm.AccountID, nl.VehicleID, nl.UpgradeID, nl.Quantity)
		if err != nil {
			var pqe *pq.Error
			if errors.As(err, &pqe) && string(pqe.Code) == foreignKeyViolation {
				err := errors.New("unknown vehicle or upgrade")
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
			return fmt.Errorf("adding cart line: %w", err)
		}

		return web.Respond(ctx, w, ln, http.StatusOK)
	}
}

func HandleUpdateQuantity(db sqlx.ExtContext) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id, err := web.ParamID(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var up QuantityUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding quantity update: %w", err))
		}

		ok, err := UpdateQuantity(ctx, db, id, up.Quantity, clm.AccountID)
		if err != nil {
			return fmt.Errorf("updating quantity of cart line[%d]: %w", id, err)
		}
		if !ok {
			return weberr.NotFound(fmt.Errorf("cart line[%d] not found for account[%d]", id, clm.AccountID))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleRemoveLine(db sqlx.ExtContext) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		id, err := web.ParamID(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		ok, err := Remove(ctx, db, id, clm.AccountID)
		if err != nil {
			return fmt.Errorf("removing cart line[%d]: %w", id, err)
		}
		if !ok {
			return weberr.NotFound(fmt.Errorf("cart line[%d] not found for account[%d]", id, clm.AccountID))
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// HandleCount serves the cart badge. It fails open: the badge is purely
// informational, so a persistence error renders as an empty badge instead of
// breaking the page.
func HandleCount(db sqlx.ExtContext) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		n, err := Count(ctx, db, clm.AccountID)
		if err != nil {
			n = 0
		}

		resp := struct {
			Count int `json:"count"`
		}{n}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

func HandleClear(db sqlx.ExtContext) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		if err := Delete(ctx, db, clm.AccountID); err != nil {
			return fmt.Errorf("flushing cart: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
