package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("account not found")

func Create(ctx context.Context, db sqlx.ExtContext, na Account) (Account, error) {
	const q = `
	INSERT INTO account (account_firstname, account_lastname, account_email, account_password, account_type)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING account_id, account_firstname, account_lastname, account_email, account_password, account_type`

	var a Account
	err := sqlx.GetContext(ctx, db, &a, q, na.FirstName, na.LastName, na.Email, na.PasswordHash, na.Role)
	if err != nil {
		return Account{}, fmt.Errorf("inserting account: %w", err)
	}
	return a, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id int) (Account, error) {
	const q = `
	SELECT account_id, account_firstname, account_lastname, account_email, account_password, account_type
	FROM account
	WHERE account_id = $1`

	var a Account
	if err := sqlx.GetContext(ctx, db, &a, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("fetching account[%d]: %w", id, err)
	}
	return a, nil
}

func FetchByEmail(ctx context.Context, db sqlx.ExtContext, email string) (Account, error) {
	const q = `
	SELECT account_id, account_firstname, account_lastname, account_email, account_password, account_type
	FROM account
	WHERE account_email = $1`

	var a Account
	if err := sqlx.GetContext(ctx, db, &a, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("fetching account by email: %w", err)
	}
	return a, nil
}

// EmailTaken reports whether email is already registered to an account other
// than excludeID. Pass 0 to check against every account.
func EmailTaken(ctx context.Context, db sqlx.ExtContext, email string, excludeID int) (bool, error) {
	const q = `
	SELECT count(*)
	FROM account
	WHERE account_email = $1 AND account_id != $2`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, email, excludeID); err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return n > 0, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, a Account) error {
	const q = `
	UPDATE account
	SET account_firstname = $2, account_lastname = $3, account_email = $4
	WHERE account_id = $1`

	res, err := db.ExecContext(ctx, q, a.ID, a.FirstName, a.LastName, a.Email)
	if err != nil {
		return fmt.Errorf("updating account[%d]: %w", a.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func UpdatePassword(ctx context.Context, db sqlx.ExtContext, id int, hash string) error {
	const q = `
	UPDATE account
	SET account_password = $2
	WHERE account_id = $1`

	res, err := db.ExecContext(ctx, q, id, hash)
	if err != nil {
		return fmt.Errorf("updating password of account[%d]: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
