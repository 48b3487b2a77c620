package upgrade

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/ridgeline-motors/dealership/api/web"
	"github.com/ridgeline-motors/dealership/api/weberr"
	"github.com/ridgeline-motors/dealership/validate"
)

func HandleListByVehicle(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamID(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		us, err := FetchByVehicle(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching upgrades of vehicle[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, us, http.StatusOK)
	}
}
