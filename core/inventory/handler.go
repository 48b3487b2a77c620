package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ridgeline-motors/dealership/api/web"
	"github.com/ridgeline-motors/dealership/api/weberr"
	"github.com/ridgeline-motors/dealership/validate"
)

// uniqueViolation is the postgres error code raised when an insert collides
// with a unique constraint, here a duplicate classification name.
const uniqueViolation = "23505"

func HandleListClassifications(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cs, err := FetchClassifications(ctx, db)
		if err != nil {
			return fmt.Errorf("fetching classifications: %w", err)
		}

		return web.Respond(ctx, w, cs, http.StatusOK)
	}
}

func HandleCreateClassification(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nc ClassificationNew
		if err := web.Decode(w, r, &nc); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding classification: %w", err))
		}

		if err := validate.Check(nc); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		c, err := CreateClassification(ctx, db, nc)
		if err != nil {
			var pqe *pq.Error
			if errors.As(err, &pqe) && string(pqe.Code) == uniqueViolation {
				err := errors.New("classification already exists")
				return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
			}
			return fmt.Errorf("creating classification: %w", err)
		}

		return web.Respond(ctx, w, c, http.StatusCreated)
	}
}

func HandleListByClassification(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamID(r, "classification_id")
		if err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		vs, err := FetchByClassification(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching vehicles of classification[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, vs, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamID(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		v, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching vehicle[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, v, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var nv VehicleNew
		if err := web.Decode(w, r, &nv); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding vehicle: %w", err))
		}

		if err := validate.Check(nv); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if nv.Price.IsNegative() {
			err := errors.New("price must not be negative")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		v, err := Create(ctx, db, nv)
		if err != nil {
			return fmt.Errorf("creating vehicle: %w", err)
		}

		return web.Respond(ctx, w, v, http.StatusCreated)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamID(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		var up VehicleUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding vehicle update: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		if up.Price != nil && up.Price.IsNegative() {
			err := errors.New("price must not be negative")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		v, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching vehicle[%d]: %w", id, err)
		}

		if up.Make != nil {
			v.Make = *up.Make
		}
		if up.Model != nil {
			v.Model = *up.Model
		}
		if up.Year != nil {
			v.Year = *up.Year
		}
		if up.Description != nil {
			v.Description = *up.Description
		}
		if up.Image != nil {
			v.Image = *up.Image
		}
		if up.Thumbnail != nil {
			v.Thumbnail = *up.Thumbnail
		}
		if up.Price != nil {
			v.Price = *up.Price
		}
		if up.Miles != nil {
			v.Miles = *up.Miles
		}
		if up.Color != nil {
			v.Color = *up.Color
		}
		if up.ClassificationID != nil {
			v.ClassificationID = *up.ClassificationID
		}

		if err := Update(ctx, db, v); err != nil {
			return fmt.Errorf("updating vehicle[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, v, http.StatusOK)
	}
}

func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id, err := web.ParamID(r, "id")
		if err != nil {
			return weberr.BadRequest(err)
		}
		if err := validate.CheckID(id); err != nil {
			return weberr.BadRequest(err)
		}

		if err := Delete(ctx, db, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("deleting vehicle[%d]: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
