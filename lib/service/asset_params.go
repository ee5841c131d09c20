package service

import (
	"time"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/oapi-codegen/nullable"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

type CreateAssetParams struct {
	Name                string                 `json:"name" validate:"required,max=255"`
	Description         *string                `json:"description"`
	SerialNumber        string                 `json:"serial_number" validate:"required,max=100"`
	Category            string                 `json:"category" validate:"required,max=100"`
	Location            *string                `json:"location"`
	Status              models.AssetStatus     `json:"status" validate:"omitempty,oneof=ACTIVE MAINTENANCE RETIRED DISPOSED"`
	PurchaseDate        *time.Time             `json:"purchase_date" validate:"required"`
	PurchasePrice       float64                `json:"purchase_price" validate:"gt=0"`
	CurrentValue        *float64               `json:"current_value"`
	LastMaintenanceDate *time.Time             `json:"last_maintenance_date"`
	NextMaintenanceDate *time.Time             `json:"next_maintenance_date"`
	AssetMetadata       map[string]interface{} `json:"asset_metadata"`
}

func (p *CreateAssetParams) toModel() *models.Asset {
	asset := &models.Asset{
		Name:                p.Name,
		Description:         p.Description,
		SerialNumber:        p.SerialNumber,
		Category:            p.Category,
		Location:            p.Location,
		Status:              p.Status,
		PurchasePrice:       p.PurchasePrice,
		CurrentValue:        p.CurrentValue,
		LastMaintenanceDate: p.LastMaintenanceDate,
		NextMaintenanceDate: p.NextMaintenanceDate,
		AssetMetadata:       p.AssetMetadata,
	}
	if p.PurchaseDate != nil {
		asset.PurchaseDate = *p.PurchaseDate
	}
	if asset.Status == "" {
		asset.Status = models.AssetStatusActive
	}
	if asset.AssetMetadata == nil {
		asset.AssetMetadata = map[string]interface{}{}
	}
	return asset
}

// AssetUpdate carries a partial update. Each attribute is absent,
// null or a value; only present attributes are applied.
type AssetUpdate struct {
	Name                nullable.Nullable[string]                 `json:"name"`
	Description         nullable.Nullable[string]                 `json:"description"`
	SerialNumber        nullable.Nullable[string]                 `json:"serial_number"`
	Category            nullable.Nullable[string]                 `json:"category"`
	Location            nullable.Nullable[string]                 `json:"location"`
	Status              nullable.Nullable[models.AssetStatus]     `json:"status"`
	PurchaseDate        nullable.Nullable[time.Time]              `json:"purchase_date"`
	PurchasePrice       nullable.Nullable[float64]                `json:"purchase_price"`
	CurrentValue        nullable.Nullable[float64]                `json:"current_value"`
	LastMaintenanceDate nullable.Nullable[time.Time]              `json:"last_maintenance_date"`
	NextMaintenanceDate nullable.Nullable[time.Time]              `json:"next_maintenance_date"`
	AssetMetadata       nullable.Nullable[map[string]interface{}] `json:"asset_metadata"`
}

type ListAssetsParams struct {
	Skip   int
	Limit  int
	Search string
}
