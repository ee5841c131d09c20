package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/getAlby/assethub.go/rabbitmq"
	"github.com/uptrace/bun"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (svc *AssetService) CreateAsset(ctx context.Context, params *CreateAssetParams) (*models.Asset, error) {
	if err := validate.Struct(params); err != nil {
		return nil, newValidationError(err)
	}
	asset := params.toModel()
	if err := validateAsset(asset); err != nil {
		return nil, err
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := ensureSerialAvailable(ctx, tx, asset.SerialNumber, 0); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(asset).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	svc.publishAssetEvent(ctx, rabbitmq.AssetCreated, asset)
	return asset, nil
}

func (svc *AssetService) FindAsset(ctx context.Context, id int64) (*models.Asset, error) {
	var asset models.Asset
	err := svc.DB.NewSelect().Model(&asset).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (svc *AssetService) FindAssetBySerial(ctx context.Context, serialNumber string) (*models.Asset, error) {
	var asset models.Asset
	err := svc.DB.NewSelect().Model(&asset).Where("serial_number = ?", serialNumber).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// ListAssets pages through assets in insertion order. A non-empty search
// matches case-insensitively anywhere in name, serial number or category.
func (svc *AssetService) ListAssets(ctx context.Context, params ListAssetsParams) ([]models.Asset, error) {
	if err := params.normalize(); err != nil {
		return nil, err
	}

	assets := []models.Asset{}
	query := svc.DB.NewSelect().Model(&assets)
	if params.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(params.Search)) + "%"
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
				WhereOr(`LOWER(serial_number) LIKE ? ESCAPE '\'`, pattern).
				WhereOr(`LOWER(category) LIKE ? ESCAPE '\'`, pattern)
		})
	}
	err := query.Order("id ASC").Offset(params.Skip).Limit(params.Limit).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// UpdateAsset applies a partial update. The stored row is left untouched
// unless the merged record passes validation and the serial stays unique.
func (svc *AssetService) UpdateAsset(ctx context.Context, id int64, update *AssetUpdate) (*models.Asset, error) {
	var asset models.Asset
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&asset).Where("id = ?", id).Limit(1).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAssetNotFound
			}
			return err
		}

		previousSerial := asset.SerialNumber
		if err := update.apply(&asset); err != nil {
			return err
		}
		if err := validateAsset(&asset); err != nil {
			return err
		}
		if asset.SerialNumber != previousSerial {
			if err := ensureSerialAvailable(ctx, tx, asset.SerialNumber, asset.ID); err != nil {
				return err
			}
		}

		_, err = tx.NewUpdate().
			Model(&asset).
			ExcludeColumn("id", "created_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, mapWriteError(err)
	}

	svc.publishAssetEvent(ctx, rabbitmq.AssetUpdated, &asset)
	return &asset, nil
}

func (svc *AssetService) DeleteAsset(ctx context.Context, id int64) error {
	var asset models.Asset
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(&asset).Where("id = ?", id).Limit(1).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAssetNotFound
			}
			return err
		}
		res, err := tx.NewDelete().Model(&asset).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		if rows, err := res.RowsAffected(); err == nil && rows == 0 {
			return ErrAssetNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	svc.publishAssetEvent(ctx, rabbitmq.AssetDeleted, &asset)
	return nil
}

func ensureSerialAvailable(ctx context.Context, tx bun.Tx, serialNumber string, excludeID int64) error {
	query := tx.NewSelect().Model((*models.Asset)(nil)).Where("serial_number = ?", serialNumber)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	exists, err := query.Exists(ctx)
	if err != nil {
		return fmt.Errorf("checking serial number: %w", err)
	}
	if exists {
		return ErrSerialNumberTaken
	}
	return nil
}

// mapWriteError turns constraint violations that slipped past the
// pre-check (concurrent writers) into domain errors.
func mapWriteError(err error) error {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrAssetNotFound), errors.Is(err, ErrSerialNumberTaken), errors.As(err, &validationErr):
		return err
	case isUniqueViolation(err):
		return ErrSerialNumberTaken
	}
	return err
}
