package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "ACTIVE"
	AssetStatusMaintenance AssetStatus = "MAINTENANCE"
	AssetStatusRetired     AssetStatus = "RETIRED"
	AssetStatusDisposed    AssetStatus = "DISPOSED"
)

var AssetStatuses = []AssetStatus{
	AssetStatusActive,
	AssetStatusMaintenance,
	AssetStatusRetired,
	AssetStatusDisposed,
}

func (s AssetStatus) Valid() bool {
	for _, status := range AssetStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Asset : Asset Model
// The text fields are capped so the QR projection always fits in a symbol.
type Asset struct {
	bun.BaseModel `bun:"table:assets,alias:a"`

	ID                  int64                  `json:"id" bun:",pk,autoincrement"`
	Name                string                 `json:"name" bun:",notnull" validate:"notblank,max=255"`
	Description         *string                `json:"description"`
	SerialNumber        string                 `json:"serial_number" bun:",notnull,unique" validate:"notblank,max=100"`
	Category            string                 `json:"category" bun:",notnull" validate:"notblank,max=100"`
	Location            *string                `json:"location"`
	Status              AssetStatus            `json:"status" bun:",notnull,default:'ACTIVE'" validate:"oneof=ACTIVE MAINTENANCE RETIRED DISPOSED"`
	PurchaseDate        time.Time              `json:"purchase_date" bun:",notnull"`
	PurchasePrice       float64                `json:"purchase_price" bun:",notnull" validate:"gt=0"`
	CurrentValue        *float64               `json:"current_value"`
	LastMaintenanceDate *time.Time             `json:"last_maintenance_date"`
	NextMaintenanceDate *time.Time             `json:"next_maintenance_date"`
	AssetMetadata       map[string]interface{} `json:"asset_metadata" bun:",nullzero"`
	CreatedAt           time.Time              `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt           bun.NullTime           `json:"updated_at"`
}

func (a *Asset) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if a.CreatedAt.IsZero() {
			a.CreatedAt = time.Now().UTC()
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = bun.NullTime{Time: time.Now().UTC()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Asset)(nil)
