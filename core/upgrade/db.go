package upgrade

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("upgrade not found")

func FetchByVehicle(ctx context.Context, db sqlx.ExtContext, invID int) ([]Upgrade, error) {
	const q = `
	SELECT upgrade_id, inv_id, upgrade_name, upgrade_description, upgrade_price
	FROM upgrade
	WHERE inv_id = $1
	ORDER BY upgrade_name`

	us := []Upgrade{}
	if err := sqlx.SelectContext(ctx, db, &us, q, invID); err != nil {
		return nil, fmt.Errorf("fetching upgrades of vehicle[%d]: %w", invID, err)
	}
	return us, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id int) (Upgrade, error) {
	const q = `
	SELECT upgrade_id, inv_id, upgrade_name, upgrade_description, upgrade_price
	FROM upgrade
	WHERE upgrade_id = $1`

	var u Upgrade
	if err := sqlx.GetContext(ctx, db, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Upgrade{}, ErrNotFound
		}
		return Upgrade{}, fmt.Errorf("fetching upgrade[%d]: %w", id, err)
	}
	return u, nil
}
