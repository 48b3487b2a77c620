package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("vehicle not found")

func FetchClassifications(ctx context.Context, db sqlx.ExtContext) ([]Classification, error) {
	const q = `
	SELECT classification_id, classification_name
	FROM classification
	ORDER BY classification_name`

	cs := []Classification{}
	if err := sqlx.SelectContext(ctx, db, &cs, q); err != nil {
		return nil, fmt.Errorf("fetching classifications: %w", err)
	}
	return cs, nil
}

func CreateClassification(ctx context.Context, db sqlx.ExtContext, nc ClassificationNew) (Classification, error) {
	const q = `
	INSERT INTO classification (classification_name)
	VALUES ($1)
	RETURNING classification_id, classification_name`

	var c Classification
	if err := sqlx.GetContext(ctx, db, &c, q, nc.Name); err != nil {
		return Classification{}, fmt.Errorf("inserting classification: %w", err)
	}
	return c, nil
}

func FetchByClassification(ctx context.Context, db sqlx.ExtContext, classificationID int) ([]ClassifiedVehicle, error) {
	const q = `
	SELECT i.inv_id, i.inv_make, i.inv_model, i.inv_year, i.inv_description,
	       i.inv_image, i.inv_thumbnail, i.inv_price, i.inv_miles, i.inv_color,
	       i.classification_id, c.classification_name
	FROM inventory AS i
	JOIN classification AS c ON i.classification_id = c.classification_id
	WHERE i.classification_id = $1
	ORDER BY i.inv_make, i.inv_model`

	vs := []ClassifiedVehicle{}
	if err := sqlx.SelectContext(ctx, db, &vs, q, classificationID); err != nil {
		return nil, fmt.Errorf("fetching vehicles of classification[%d]: %w", classificationID, err)
	}
	return vs, nil
}

func Fetch(ctx context.Context, db sqlx.ExtContext, id int) (Vehicle, error) {
	const q = `
	SELECT inv_id, inv_make, inv_model, inv_year, inv_description,
	       inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id
	FROM inventory
	WHERE inv_id = $1`

	var v Vehicle
	if err := sqlx.GetContext(ctx, db, &v, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vehicle{}, ErrNotFound
		}
		return Vehicle{}, fmt.Errorf("fetching vehicle[%d]: %w", id, err)
	}
	return v, nil
}

func Create(ctx context.Context, db sqlx.ExtContext, nv VehicleNew) (Vehicle, error) {
	const q = `
	INSERT INTO inventory (inv_make, inv_model, inv_year, inv_description,
	                       inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING inv_id, inv_make, inv_model, inv_year, inv_description,
	          inv_image, inv_thumbnail, inv_price, inv_miles, inv_color, classification_id`

	var v Vehicle
	err := sqlx.GetContext(ctx, db, &v, q,
		nv.Make, nv.Model, nv.Year, nv.Description,
		nv.Image, nv.Thumbnail, nv.Price, nv.Miles, nv.Color, nv.ClassificationID)
	if err != nil {
		return Vehicle{}, fmt.Errorf("inserting vehicle: %w", err)
	}
	return v, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, v Vehicle) error {
	const q = `
	UPDATE inventory
	SET inv_make = $2, inv_model = $3, inv_year = $4, inv_description = $5,
	    inv_image = $6, inv_thumbnail = $7, inv_price = $8, inv_miles = $9,
	    inv_color = $10, classification_id = $11
	WHERE inv_id = $1`

	res, err := db.ExecContext(ctx, q,
		v.ID, v.Make, v.Model, v.Year, v.Description,
		v.Image, v.Thumbnail, v.Price, v.Miles, v.Color, v.ClassificationID)
	if err != nil {
		return fmt.Errorf("updating vehicle[%d]: %w", v.ID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, id int) error {
	const q = `
	DELETE FROM inventory
	WHERE inv_id = $1`

	res, err := db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("deleting vehicle[%d]: %w", id, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
