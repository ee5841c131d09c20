package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/labstack/gommon/random"
)

var (
	seedCategories = []string{"Laptop", "Server", "Network Equipment", "Printer", "Mobile Device"}
	seedLocations  = []string{"Office A", "Office B", "Data Center", "Warehouse", "Remote"}
)

type SeedResult struct {
	Created int
	Skipped int
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func timePtr(t time.Time) *time.Time {
	return &t
}

// SampleAssets is the demo catalogue, dated relative to now.
func SampleAssets(now time.Time) []CreateAssetParams {
	day := 24 * time.Hour
	ago := func(days int) *time.Time { return timePtr(now.Add(-time.Duration(days) * day)) }
	in := func(days int) *time.Time { return timePtr(now.Add(time.Duration(days) * day)) }
	specs := func(kv ...string) map[string]interface{} {
		s := map[string]interface{}{}
		for i := 0; i+1 < len(kv); i += 2 {
			s[kv[i]] = kv[i+1]
		}
		return map[string]interface{}{"specs": s}
	}

	return []CreateAssetParams{
		{
			Name: "Dell XPS 15 Laptop", Description: strPtr("High-performance development laptop"),
			SerialNumber: "DLXPS15-2023-001", Category: "IT Equipment", Location: strPtr("IT Department"),
			Status: models.AssetStatusActive, PurchaseDate: ago(180), PurchasePrice: 1999.99, CurrentValue: floatPtr(1799.99),
			LastMaintenanceDate: ago(30), NextMaintenanceDate: in(150),
			AssetMetadata: specs("ram", "32GB", "storage", "1TB SSD", "processor", "Intel i9"),
		},
		{
			Name: "Canon EOS R5 Camera", Description: strPtr("Professional photography camera"),
			SerialNumber: "CNR5-2023-002", Category: "Photography Equipment", Location: strPtr("Media Department"),
			Status: models.AssetStatusActive, PurchaseDate: ago(120), PurchasePrice: 3499.99, CurrentValue: floatPtr(3299.99),
			LastMaintenanceDate: ago(15), NextMaintenanceDate: in(165),
			AssetMetadata: specs("resolution", "45MP", "lens", "24-70mm f/2.8"),
		},
		{
			Name: "HP LaserJet Pro M404dn", Description: strPtr("Office printer"),
			SerialNumber: "HPLJ-2023-003", Category: "Office Equipment", Location: strPtr("Main Office"),
			Status: models.AssetStatusActive, PurchaseDate: ago(90), PurchasePrice: 299.99, CurrentValue: floatPtr(249.99),
			LastMaintenanceDate: ago(45), NextMaintenanceDate: in(135),
			AssetMetadata: specs("type", "Laser", "pages_per_minute", "40"),
		},
		{
			Name: `Samsung 65" QLED TV`, Description: strPtr("Conference room display"),
			SerialNumber: "SMSQL-2023-004", Category: "AV Equipment", Location: strPtr("Conference Room A"),
			Status: models.AssetStatusActive, PurchaseDate: ago(60), PurchasePrice: 1499.99, CurrentValue: floatPtr(1399.99),
			NextMaintenanceDate: in(300),
			AssetMetadata:       specs("resolution", "4K", "refresh_rate", "120Hz"),
		},
		{
			Name: "Cisco Meraki MX84", Description: strPtr("Network security appliance"),
			SerialNumber: "CSMX-2023-005", Category: "Network Equipment", Location: strPtr("Server Room"),
			Status: models.AssetStatusActive, PurchaseDate: ago(150), PurchasePrice: 899.99, CurrentValue: floatPtr(799.99),
			LastMaintenanceDate: ago(60), NextMaintenanceDate: in(240),
			AssetMetadata: specs("throughput", "500Mbps", "ports", "8"),
		},
		{
			Name: "Herman Miller Aeron Chair", Description: strPtr("Ergonomic office chair"),
			SerialNumber: "HMA-2023-006", Category: "Furniture", Location: strPtr("CEO Office"),
			Status: models.AssetStatusActive, PurchaseDate: ago(30), PurchasePrice: 1299.99, CurrentValue: floatPtr(1199.99),
			NextMaintenanceDate: in(330),
			AssetMetadata:       specs("size", "B", "color", "Graphite"),
		},
		{
			Name: "DJI Mavic 3 Pro", Description: strPtr("Professional drone"),
			SerialNumber: "DJM3-2023-007", Category: "Photography Equipment", Location: strPtr("Media Department"),
			Status: models.AssetStatusMaintenance, PurchaseDate: ago(45), PurchasePrice: 2199.99, CurrentValue: floatPtr(1999.99),
			LastMaintenanceDate: ago(5), NextMaintenanceDate: in(25),
			AssetMetadata: specs("camera", "4/3 CMOS", "flight_time", "46min"),
		},
		{
			Name: "Apple Mac Studio", Description: strPtr("Professional workstation"),
			SerialNumber: "APMS-2023-008", Category: "IT Equipment", Location: strPtr("Design Department"),
			Status: models.AssetStatusActive, PurchaseDate: ago(20), PurchasePrice: 3999.99, CurrentValue: floatPtr(3899.99),
			NextMaintenanceDate: in(340),
			AssetMetadata:       specs("processor", "M2 Ultra", "ram", "64GB"),
		},
		{
			Name: "Sony WH-1000XM5", Description: strPtr("Noise-cancelling headphones"),
			SerialNumber: "SNWH-2023-009", Category: "Audio Equipment", Location: strPtr("IT Department"),
			Status: models.AssetStatusActive, PurchaseDate: ago(15), PurchasePrice: 399.99, CurrentValue: floatPtr(379.99),
			NextMaintenanceDate: in(345),
			AssetMetadata:       specs("battery_life", "30h", "bluetooth", "5.2"),
		},
		{
			Name: "Epson EB-1781W", Description: strPtr("Portable projector"),
			SerialNumber: "EPEB-2023-010", Category: "AV Equipment", Location: strPtr("Meeting Room B"),
			Status: models.AssetStatusRetired, PurchaseDate: ago(365), PurchasePrice: 699.99, CurrentValue: floatPtr(0),
			LastMaintenanceDate: ago(30),
			AssetMetadata:       specs("resolution", "1280x800", "brightness", "3000 lumens"),
		},
	}
}

// RandomAssets generates n assets with random serial numbers, purchased
// within the last two years.
func RandomAssets(n int, now time.Time) []CreateAssetParams {
	assets := make([]CreateAssetParams, 0, n)
	for i := 0; i < n; i++ {
		purchaseDate := now.Add(-time.Duration(rand.Intn(731)) * 24 * time.Hour)
		assets = append(assets, CreateAssetParams{
			Name:          fmt.Sprintf("Asset %d", i+1),
			SerialNumber:  "SN" + random.String(8, random.Uppercase, random.Numeric),
			Category:      seedCategories[rand.Intn(len(seedCategories))],
			Location:      strPtr(seedLocations[rand.Intn(len(seedLocations))]),
			Status:        models.AssetStatuses[rand.Intn(len(models.AssetStatuses))],
			PurchaseDate:  &purchaseDate,
			PurchasePrice: math.Round((100+rand.Float64()*4900)*100) / 100,
			AssetMetadata: map[string]interface{}{
				"manufacturer":     fmt.Sprintf("Manufacturer %d", rand.Intn(5)+1),
				"model":            fmt.Sprintf("Model %d", rand.Intn(900)+100),
				"warranty_expires": purchaseDate.AddDate(1, 0, 0).Format(time.RFC3339),
			},
		})
	}
	return assets
}

// Seed creates the given assets through the regular create path. Assets
// whose serial number already exists are skipped.
func (svc *AssetService) Seed(ctx context.Context, assets []CreateAssetParams) (SeedResult, error) {
	result := SeedResult{}
	for i := range assets {
		_, err := svc.CreateAsset(ctx, &assets[i])
		switch {
		case errors.Is(err, ErrSerialNumberTaken):
			result.Skipped++
		case err != nil:
			return result, fmt.Errorf("seeding %s: %w", assets[i].SerialNumber, err)
		default:
			result.Created++
		}
	}
	return result, nil
}
