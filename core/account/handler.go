package account

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/ridgeline-motors/dealership/api/web"
	"github.com/ridgeline-motors/dealership/api/weberr"
	"github.com/ridgeline-motors/dealership/core/claims"
	"github.com/ridgeline-motors/dealership/database"
	"github.com/ridgeline-motors/dealership/validate"
	"golang.org/x/crypto/bcrypt"
)

func HandleShowCurrent(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		a, err := Fetch(ctx, db, clm.AccountID)
		if err != nil {
			return fmt.Errorf("fetching account[%d]: %w", clm.AccountID, err)
		}

		return web.Respond(ctx, w, a, http.StatusOK)
	}
}

func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var up AccountUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding account update: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		var a Account
		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			var err error
			a, err = Fetch(ctx, tx, clm.AccountID)
			if err != nil {
				return fmt.Errorf("fetching account[%d]: %w", clm.AccountID, err)
			}

			if up.FirstName != nil {
				a.FirstName = *up.FirstName
			}
			if up.LastName != nil {
				a.LastName = *up.LastName
			}
			if up.Email != nil {
				taken, err := EmailTaken(ctx, tx, *up.Email, a.ID)
				if err != nil {
					return fmt.Errorf("checking email availability: %w", err)
				}
				if taken {
					err := errors.New("email is already registered")
					return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
				}
				a.Email = *up.Email
			}

			return Update(ctx, tx, a)
		})
		if err != nil {
			if _, _, ok := weberr.Response(err); ok {
				return err
			}
			return fmt.Errorf("updating account[%d]: %w", clm.AccountID, err)
		}

		return web.Respond(ctx, w, a, http.StatusOK)
	}
}

func HandleUpdatePassword(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var up PasswordUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding password update: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(up.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		if err := UpdatePassword(ctx, db, clm.AccountID, string(hash)); err != nil {
			return fmt.Errorf("updating password of account[%d]: %w", clm.AccountID, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
