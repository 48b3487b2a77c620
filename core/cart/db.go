package cart

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// The (account_id, inv_id, upgrade_id) key is enforced by two partial unique
// indexes because upgrade_id is nullable: one covers the bare-vehicle rows
// (upgrade_id IS NULL), the other the upgrade rows. Add targets whichever
// index matches and folds the new quantity into the existing row, so two
// concurrent adds of the same tuple both land in the final quantity without
// any read-modify-write in application code.
const (
	addVehicleQuery = `
	INSERT INTO cart_item (account_id, inv_id, upgrade_id, quantity)
	VALUES ($1, $2, NULL, $3)
	ON CONFLICT (account_id, inv_id) WHERE upgrade_id IS NULL
	DO UPDATE SET quantity = cart_item.quantity + EXCLUDED.quantity
	RETURNING cart_item_id, account_id, inv_id, upgrade_id, quantity, added_date`

	addUpgradeQuery = `
	INSERT INTO cart_item (account_id, inv_id, upgrade_id, quantity)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (account_id, inv_id, upgrade_id) WHERE upgrade_id IS NOT NULL
	DO UPDATE SET quantity = cart_item.quantity + EXCLUDED.quantity
	RETURNING cart_item_id, account_id, inv_id, upgrade_id, quantity, added_date`
)

// Add upserts a line for the (accountID, invID, upgradeID) tuple. On a key
// collision the quantity is accumulated, not overwritten, and added_date is
// left untouched. A non-positive qty is treated as 1.
func Add(ctx context.Context, db sqlx.ExtContext, accountID int, invID int, upgradeID *int, qty int) (Line, error) {
	if qty <= 0 {
		qty = 1
	}

	var ln Line
	var err error
	if upgradeID == nil {
		err = sqlx.GetContext(ctx, db, &ln, addVehicleQuery, accountID, invID, qty)
	} else {
		err = sqlx.GetContext(ctx, db, &ln, addUpgradeQuery, accountID, invID, *upgradeID, qty)
	}
	if err != nil {
		return Line{}, fmt.Errorf("upserting cart line for account[%d] vehicle[%d]: %w", accountID, invID, err)
	}
	return ln, nil
}

// Remove deletes the line only when it belongs to accountID. The ownership
// check lives in the predicate, so a guessed id of another account's line is
// indistinguishable from a missing one: both return false without error.
func Remove(ctx context.Context, db sqlx.ExtContext, cartItemID int, accountID int) (bool, error) {
	const q = `
	DELETE FROM cart_item
	WHERE cart_item_id = $1 AND account_id = $2`

	res, err := db.ExecContext(ctx, q, cartItemID, accountID)
	if err != nil {
		return false, fmt.Errorf("deleting cart line[%d]: %w", cartItemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting cart line[%d]: %w", cartItemID, err)
	}
	return n == 1, nil
}

// UpdateQuantity sets the line's quantity to qty (an absolute set, not an
// increment). A qty of zero or less means the line should go away and
// delegates to Remove.
func UpdateQuantity(ctx context.Context, db sqlx.ExtContext, cartItemID int, qty int, accountID int) (bool, error) {
	if qty <= 0 {
		return Remove(ctx, db, cartItemID, accountID)
	}

	const q = `
	UPDATE cart_item
	SET quantity = $2
	WHERE cart_item_id = $1 AND account_id = $3`

	res, err := db.ExecContext(ctx, q, cartItemID, qty, accountID)
	if err != nil {
		return false, fmt.Errorf("updating quantity of cart line[%d]: %w", cartItemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("updating quantity of cart line[%d]: %w", cartItemID, err)
	}
	return n == 1, nil
}

// FetchLines returns the account's cart joined with the catalog, most recent
// first. The item total of an upgrade line uses the upgrade price, of a
// bare-vehicle line the vehicle price.
func FetchLines(ctx context.Context, db sqlx.ExtContext, accountID int) ([]EnrichedLine, error) {
	const q = `
	SELECT ci.cart_item_id, ci.account_id, ci.inv_id, ci.upgrade_id, ci.quantity, ci.added_date,
	       i.inv_make, i.inv_model, u.upgrade_name,
	       COALESCE(u.upgrade_price, i.inv_price) AS unit_price,
	       COALESCE(u.upgrade_price, i.inv_price) * ci.quantity AS item_total
	FROM cart_item AS ci
	JOIN inventory AS i ON ci.inv_id = i.inv_id
	LEFT JOIN upgrade AS u ON ci.upgrade_id = u.upgrade_id
	WHERE ci.account_id = $1
	ORDER BY ci.added_date DESC, ci.cart_item_id DESC`

	lines := []EnrichedLine{}
	if err := sqlx.SelectContext(ctx, db, &lines, q, accountID); err != nil {
		return nil, fmt.Errorf("fetching cart lines of account[%d]: %w", accountID, err)
	}
	return lines, nil
}

// Total sums the item totals of the account's cart. An empty cart totals to
// zero, not an error. The sum stays NUMERIC end to end.
func Total(ctx context.Context, db sqlx.ExtContext, accountID int) (decimal.Decimal, error) {
	const q = `
	SELECT COALESCE(SUM(COALESCE(u.upgrade_price, i.inv_price) * ci.quantity), 0) AS total
	FROM cart_item AS ci
	JOIN inventory AS i ON ci.inv_id = i.inv_id
	LEFT JOIN upgrade AS u ON ci.upgrade_id = u.upgrade_id
	WHERE ci.account_id = $1`

	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, db, &total, q, accountID); err != nil {
		return decimal.Zero, fmt.Errorf("totaling cart of account[%d]: %w", accountID, err)
	}
	return total, nil
}

// Count sums the quantities across the account's lines, which is what the
// cart badge shows: three of one vehicle is a count of three, not one.
func Count(ctx context.Context, db sqlx.ExtContext, accountID int) (int, error) {
	const q = `
	SELECT COALESCE(SUM(quantity), 0)
	FROM cart_item
	WHERE account_id = $1`

	var n int
	if err := sqlx.GetContext(ctx, db, &n, q, accountID); err != nil {
		return 0, fmt.Errorf("counting cart of account[%d]: %w", accountID, err)
	}
	return n, nil
}

// Delete flushes every line of the account's cart.
func Delete(ctx context.Context, db sqlx.ExtContext, accountID int) error {
	const q = `
	DELETE FROM cart_item
	WHERE account_id = $1`

	if _, err := db.ExecContext(ctx, q, accountID); err != nil {
		return fmt.Errorf("flushing cart of account[%d]: %w", accountID, err)
	}
	return nil
}
