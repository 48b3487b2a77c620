package upgrade

import "github.com/shopspring/decimal"

// Upgrade is a catalog add-on offered for a specific vehicle. The catalog is
// read only from the web surface; rows are maintained out of band.
type Upgrade struct {
	ID          int             `json:"id" db:"upgrade_id"`
	VehicleID   int             `json:"vehicleId" db:"inv_id"`
	Name        string          `json:"name" db:"upgrade_name"`
	Description string          `json:"description" db:"upgrade_description"`
	Price       decimal.Decimal `json:"price" db:"upgrade_price"`
}
