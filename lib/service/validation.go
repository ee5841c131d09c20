package service

import (
	"strings"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/getAlby/assethub.go/lib"
	"github.com/oapi-codegen/nullable"
)

var validate = lib.NewValidator()

// validateAsset checks the invariants every stored asset must satisfy.
// Errors follow field order, so the first offending field is reported.
func validateAsset(asset *models.Asset) error {
	if err := validate.Struct(asset); err != nil {
		return newValidationError(err)
	}
	if asset.PurchaseDate.IsZero() {
		return &ValidationError{Field: "purchase_date", Message: "is required"}
	}
	return nil
}

func mergeRequired[T any](field string, value nullable.Nullable[T], dst *T) error {
	if !value.IsSpecified() {
		return nil
	}
	if value.IsNull() {
		return &ValidationError{Field: field, Message: "may not be null"}
	}
	*dst = value.MustGet()
	return nil
}

func mergeOptional[T any](value nullable.Nullable[T], dst **T) {
	if !value.IsSpecified() {
		return
	}
	if value.IsNull() {
		*dst = nil
		return
	}
	v := value.MustGet()
	*dst = &v
}

// apply merges the present attributes into asset. The result still has to
// pass validateAsset before it is stored.
func (p *AssetUpdate) apply(asset *models.Asset) error {
	if err := mergeRequired("name", p.Name, &asset.Name); err != nil {
		return err
	}
	if err := mergeRequired("serial_number", p.SerialNumber, &asset.SerialNumber); err != nil {
		return err
	}
	if err := mergeRequired("category", p.Category, &asset.Category); err != nil {
		return err
	}
	if err := mergeRequired("status", p.Status, &asset.Status); err != nil {
		return err
	}
	if err := mergeRequired("purchase_date", p.PurchaseDate, &asset.PurchaseDate); err != nil {
		return err
	}
	if err := mergeRequired("purchase_price", p.PurchasePrice, &asset.PurchasePrice); err != nil {
		return err
	}
	mergeOptional(p.Description, &asset.Description)
	mergeOptional(p.Location, &asset.Location)
	mergeOptional(p.CurrentValue, &asset.CurrentValue)
	mergeOptional(p.LastMaintenanceDate, &asset.LastMaintenanceDate)
	mergeOptional(p.NextMaintenanceDate, &asset.NextMaintenanceDate)
	if p.AssetMetadata.IsSpecified() {
		// null clears the metadata, which leaves a nil map
		asset.AssetMetadata, _ = p.AssetMetadata.Get()
	}
	return nil
}

func (p *ListAssetsParams) normalize() error {
	if p.Skip < 0 {
		return &ValidationError{Field: "skip", Message: "must be greater than or equal to 0"}
	}
	if p.Limit < 0 {
		return &ValidationError{Field: "limit", Message: "must be greater than or equal to 0"}
	}
	if p.Limit == 0 {
		p.Limit = DefaultListLimit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return nil
}
