package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/getAlby/assethub.go/db"
	"github.com/getAlby/assethub.go/db/migrations"
	"github.com/getAlby/assethub.go/lib/logging"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		random     int
		skipSample bool
	)

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Insert sample assets into the configured database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return run(ctx, random, skipSample)
		},
	}

	cmd.Flags().IntVar(&random, "random", 0, "Number of additional randomly generated assets")
	cmd.Flags().BoolVar(&skipSample, "skip-sample", false, "Do not insert the sample catalogue")
	return cmd
}

func run(ctx context.Context, random int, skipSample bool) error {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("Failed to load .env file")
	}
	c, err := service.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	logger := logging.Logger(c.LogFilePath)

	dbConn, err := db.Open(c)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer dbConn.Close()

	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}

	svc := &service.AssetService{
		Config:  c,
		DB:      dbConn,
		Logger:  logger,
		QRCodec: service.NewQRCodec(c),
	}

	now := time.Now().UTC()
	var assets []service.CreateAssetParams
	if !skipSample {
		assets = append(assets, service.SampleAssets(now)...)
	}
	assets = append(assets, service.RandomAssets(random, now)...)

	result, err := svc.Seed(ctx, assets)
	if err != nil {
		return err
	}
	logger.Infof("Seeded %d assets, skipped %d existing serial numbers", result.Created, result.Skipped)
	return nil
}
