package inventory

import "github.com/shopspring/decimal"

type Classification struct {
	ID   int    `json:"id" db:"classification_id"`
	Name string `json:"name" db:"classification_name"`
}

// ClassificationNew mirrors the management form: a single alphanumeric name,
// no spaces or special characters.
type ClassificationNew struct {
	Name string `json:"name" validate:"required,alphanum"`
}

type Vehicle struct {
	ID               int             `json:"id" db:"inv_id"`
	Make             string          `json:"make" db:"inv_make"`
	Model            string          `json:"model" db:"inv_model"`
	Year             int             `json:"year" db:"inv_year"`
	Description      string          `json:"description" db:"inv_description"`
	Image            string          `json:"image" db:"inv_image"`
	Thumbnail        string          `json:"thumbnail" db:"inv_thumbnail"`
	Price            decimal.Decimal `json:"price" db:"inv_price"`
	Miles            int             `json:"miles" db:"inv_miles"`
	Color            string          `json:"color" db:"inv_color"`
	ClassificationID int             `json:"classificationId" db:"classification_id"`
}

// ClassifiedVehicle is a Vehicle joined with its classification name, the
// shape the classification listing returns.
type ClassifiedVehicle struct {
	Vehicle
	ClassificationName string `json:"classificationName" db:"classification_name"`
}

type VehicleNew struct {
	Make             string          `json:"make" validate:"required"`
	Model            string          `json:"model" validate:"required"`
	Year             int             `json:"year" validate:"required,gte=1885"`
	Description      string          `json:"description" validate:"required"`
	Image            string          `json:"image" validate:"required"`
	Thumbnail        string          `json:"thumbnail" validate:"required"`
	Price            decimal.Decimal `json:"price"`
	Miles            int             `json:"miles" validate:"gte=0"`
	Color            string          `json:"color" validate:"required"`
	ClassificationID int             `json:"classificationId" validate:"required"`
}

type VehicleUp struct {
	Make             *string          `json:"make"`
	Model            *string          `json:"model"`
	Year             *int             `json:"year" validate:"omitempty,gte=1885"`
	Description      *string          `json:"description"`
	Image            *string          `json:"image"`
	Thumbnail        *string          `json:"thumbnail"`
	Price            *decimal.Decimal `json:"price"`
	Miles            *int             `json:"miles" validate:"omitempty,gte=0"`
	Color            *string          `json:"color"`
	ClassificationID *int             `json:"classificationId"`
}
