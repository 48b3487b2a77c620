package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one persisted cart row. A nil UpgradeID means the row holds the
// bare vehicle; a non-nil one means it holds that upgrade for the vehicle.
// The pair is part of the row's identity: the same (account, vehicle,
// upgrade) tuple never occupies two rows.
type Line struct {
	ID        int       `json:"id" db:"cart_item_id"`
	AccountID int       `json:"-" db:"account_id"`
	VehicleID int       `json:"vehicleId" db:"inv_id"`
	UpgradeID *int      `json:"upgradeId" db:"upgrade_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedDate time.Time `json:"addedDate" db:"added_date"`
}

type LineNew struct {
	VehicleID int  `json:"vehicleId" validate:"required,gt=0"`
	UpgradeID *int `json:"upgradeId" validate:"omitempty,gt=0"`
	Quantity  int  `json:"quantity"`
}

type QuantityUp struct {
	Quantity int `json:"quantity"`
}

// EnrichedLine joins a Line with the catalog data it references. Unit prices
// are resolved from the catalog at read time, never stored on the line, so a
// catalog price change reaches every unpurchased cart immediately.
type EnrichedLine struct {
	Line
	Make        string          `json:"make" db:"inv_make"`
	Model       string          `json:"model" db:"inv_model"`
	UpgradeName *string         `json:"upgradeName" db:"upgrade_name"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	ItemTotal   decimal.Decimal `json:"itemTotal" db:"item_total"`
}

type Cart struct {
	Lines []EnrichedLine  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}
