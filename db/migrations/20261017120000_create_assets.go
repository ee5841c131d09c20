package migrations

import (
	"context"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// serial_number gets its index from the UNIQUE constraint
		if _, err := db.NewCreateTable().Model((*models.Asset)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		_, err := db.NewCreateIndex().
			Model((*models.Asset)(nil)).
			Index("assets_category_idx").
			Column("category").
			IfNotExists().
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*models.Asset)(nil)).IfExists().Exec(ctx)
		return err
	})
}
