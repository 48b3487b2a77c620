package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/ridgeline-motors/dealership/api/web"
	"github.com/ridgeline-motors/dealership/api/weberr"
	"github.com/ridgeline-motors/dealership/core/account"
	"github.com/ridgeline-motors/dealership/core/claims"
	"github.com/ridgeline-motors/dealership/validate"
	"golang.org/x/crypto/bcrypt"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func HandleSignup(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var na account.AccountNew
		if err := web.Decode(w, r, &na); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding signup: %w", err))
		}

		if err := validate.Check(na); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		taken, err := account.EmailTaken(ctx, db, na.Email, 0)
		if err != nil {
			return fmt.Errorf("checking email availability: %w", err)
		}
		if taken {
			err := errors.New("email is already registered")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(na.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		a, err := account.Create(ctx, db, account.Account{
			FirstName:    na.FirstName,
			LastName:     na.LastName,
			Email:        na.Email,
			PasswordHash: string(hash),
			Role:         claims.RoleClient,
		})
		if err != nil {
			return fmt.Errorf("creating account: %w", err)
		}

		if err := login(ctx, session, a); err != nil {
			return fmt.Errorf("logging in new account[%d]: %w", a.ID, err)
		}

		return web.Respond(ctx, w, a, http.StatusCreated)
	}
}

func HandleLogin(db *sqlx.DB, session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var creds Credentials
		if err := web.Decode(w, r, &creds); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding credentials: %w", err))
		}

		if err := validate.Check(creds); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		a, err := account.FetchByEmail(ctx, db, creds.Email)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return invalidCredentials()
			}
			return fmt.Errorf("fetching account by email: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(creds.Password)); err != nil {
			return invalidCredentials()
		}

		if err := login(ctx, session, a); err != nil {
			return fmt.Errorf("logging in account[%d]: %w", a.ID, err)
		}

		return web.Respond(ctx, w, a, http.StatusOK)
	}
}

func HandleLogout(session *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Destroy(ctx); err != nil {
			return fmt.Errorf("destroying session: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

// login rotates the session token before binding it to the account, so a
// pre-login session id can never be replayed as an authenticated one.
func login(ctx context.Context, session *scs.SessionManager, a account.Account) error {
	if err := session.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}

	session.Put(ctx, accountIDKey, a.ID)
	session.Put(ctx, roleKey, a.Role)
	return nil
}

func invalidCredentials() error {
	err := errors.New("invalid email or password")
	return weberr.NewError(err, err.Error(), http.StatusUnauthorized)
}
