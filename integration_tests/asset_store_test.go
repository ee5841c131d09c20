package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"testing"
	"time"

	"github.com/getAlby/assethub.go/db/models"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AssetStoreTestSuite struct {
	suite.Suite
	service *service.AssetService
}

func (suite *AssetStoreTestSuite) SetupSuite() {
	svc, err := AssetHubTestServiceInit(nil)
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
}

func (suite *AssetStoreTestSuite) TearDownTest() {
	assert.NoError(suite.T(), clearAssets(suite.service))
}

func (suite *AssetStoreTestSuite) TearDownSuite() {
	suite.service.DB.Close()
}

func (suite *AssetStoreTestSuite) create(name, serialNumber, category string) *models.Asset {
	asset, err := suite.service.CreateAsset(context.Background(), newAssetParams(name, serialNumber, category))
	suite.Require().NoError(err)
	return asset
}

func (suite *AssetStoreTestSuite) update(id int64, body string) (*models.Asset, error) {
	update := &service.AssetUpdate{}
	suite.Require().NoError(json.Unmarshal([]byte(body), update))
	return suite.service.UpdateAsset(context.Background(), id, update)
}

func (suite *AssetStoreTestSuite) TestCreateAndFind() {
	created := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")
	assert.NotZero(suite.T(), created.ID)
	assert.Equal(suite.T(), models.AssetStatusActive, created.Status)
	assert.False(suite.T(), created.CreatedAt.IsZero())
	assert.True(suite.T(), created.UpdatedAt.IsZero())

	found, err := suite.service.FindAsset(context.Background(), created.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), created.ID, found.ID)
	assert.Equal(suite.T(), "Dell XPS 15", found.Name)
	assert.Equal(suite.T(), "DXPS15-001", found.SerialNumber)
	assert.Equal(suite.T(), "Laptop", found.Category)
	assert.Equal(suite.T(), "Office A", *found.Location)
	assert.Equal(suite.T(), 1500.0, found.PurchasePrice)
	assert.True(suite.T(), found.PurchaseDate.Equal(time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(suite.T(), found.CurrentValue)
	assert.Equal(suite.T(), "IT", found.AssetMetadata["owner"])

	bySerial, err := suite.service.FindAssetBySerial(context.Background(), "DXPS15-001")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), created.ID, bySerial.ID)
}

func (suite *AssetStoreTestSuite) TestFindMissing() {
	_, err := suite.service.FindAsset(context.Background(), 424242)
	assert.ErrorIs(suite.T(), err, service.ErrAssetNotFound)

	_, err = suite.service.FindAssetBySerial(context.Background(), "NOPE-000")
	assert.ErrorIs(suite.T(), err, service.ErrAssetNotFound)
}

func (suite *AssetStoreTestSuite) TestCreateInvalidDoesNotInsert() {
	params := newAssetParams("Canon EOS R5", "CEOSR5-001", "Camera")
	params.PurchasePrice = -5
	_, err := suite.service.CreateAsset(context.Background(), params)

	var validationErr *service.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	assert.Equal(suite.T(), "purchase_price", validationErr.Field)

	params = newAssetParams("   ", "CEOSR5-001", "Camera")
	_, err = suite.service.CreateAsset(context.Background(), params)
	assert.ErrorAs(suite.T(), err, &validationErr)

	assets, err := suite.service.ListAssets(context.Background(), service.ListAssetsParams{})
	suite.Require().NoError(err)
	assert.Empty(suite.T(), assets)
}

func (suite *AssetStoreTestSuite) TestDuplicateSerialNumber() {
	suite.create("Dell XPS 15", "DXPS15-001", "Laptop")

	_, err := suite.service.CreateAsset(context.Background(), newAssetParams("Other laptop", "DXPS15-001", "Laptop"))
	assert.ErrorIs(suite.T(), err, service.ErrSerialNumberTaken)

	assets, err := suite.service.ListAssets(context.Background(), service.ListAssetsParams{})
	suite.Require().NoError(err)
	assert.Len(suite.T(), assets, 1)
}

func (suite *AssetStoreTestSuite) TestPartialUpdate() {
	created := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")

	updated, err := suite.update(created.ID, `{"location":"Office B","status":"MAINTENANCE"}`)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Office B", *updated.Location)
	assert.Equal(suite.T(), models.AssetStatusMaintenance, updated.Status)
	assert.False(suite.T(), updated.UpdatedAt.IsZero())

	found, err := suite.service.FindAsset(context.Background(), created.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Office B", *found.Location)
	assert.Equal(suite.T(), "Dell XPS 15", found.Name)
	assert.Equal(suite.T(), "DXPS15-001", found.SerialNumber)
	assert.Equal(suite.T(), *created.Description, *found.Description)
	assert.Equal(suite.T(), created.PurchasePrice, found.PurchasePrice)
	assert.True(suite.T(), created.CreatedAt.Equal(found.CreatedAt))
	assert.False(suite.T(), found.UpdatedAt.IsZero())
}

func (suite *AssetStoreTestSuite) TestUpdatedAtNeverMovesBackwards() {
	created := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")

	_, err := suite.update(created.ID, `{"location":"Office B"}`)
	suite.Require().NoError(err)
	first, err := suite.service.FindAsset(context.Background(), created.ID)
	suite.Require().NoError(err)

	_, err = suite.update(created.ID, `{"location":"Office C"}`)
	suite.Require().NoError(err)
	second, err := suite.service.FindAsset(context.Background(), created.ID)
	suite.Require().NoError(err)

	suite.Require().False(first.UpdatedAt.IsZero())
	assert.False(suite.T(), second.UpdatedAt.Time.Before(first.UpdatedAt.Time))
	assert.False(suite.T(), first.UpdatedAt.Time.Before(first.CreatedAt))
}

func (suite *AssetStoreTestSuite) TestUpdateNullClearsOptionalField() {
	created := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")

	_, err := suite.update(created.ID, `{"description":null}`)
	suite.Require().NoError(err)

	found, err := suite.service.FindAsset(context.Background(), created.ID)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), found.Description)
	assert.NotNil(suite.T(), found.Location)
}

func (suite *AssetStoreTestSuite) TestUpdateRejectedLeavesRowUntouched() {
	created := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")

	var validationErr *service.ValidationError
	_, err := suite.update(created.ID, `{"name":null}`)
	assert.ErrorAs(suite.T(), err, &validationErr)
	_, err = suite.update(created.ID, `{"location":"Office C","purchase_price":-1}`)
	assert.ErrorAs(suite.T(), err, &validationErr)
	_, err = suite.update(created.ID, `{"category":"  "}`)
	assert.ErrorAs(suite.T(), err, &validationErr)

	found, err := suite.service.FindAsset(context.Background(), created.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Dell XPS 15", found.Name)
	assert.Equal(suite.T(), "Office A", *found.Location)
	assert.Equal(suite.T(), 1500.0, found.PurchasePrice)
	assert.True(suite.T(), found.UpdatedAt.IsZero())
}

func (suite *AssetStoreTestSuite) TestUpdateSerialNumber() {
	first := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")
	second := suite.create("Canon EOS R5", "CEOSR5-001", "Camera")

	_, err := suite.update(second.ID, `{"serial_number":"DXPS15-001"}`)
	assert.ErrorIs(suite.T(), err, service.ErrSerialNumberTaken)

	// keeping the own serial number is not a conflict
	_, err = suite.update(first.ID, `{"serial_number":"DXPS15-001","name":"Dell XPS 15 (2023)"}`)
	assert.NoError(suite.T(), err)

	updated, err := suite.update(second.ID, `{"serial_number":"CEOSR5-002"}`)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "CEOSR5-002", updated.SerialNumber)
}

func (suite *AssetStoreTestSuite) TestUpdateMissing() {
	_, err := suite.update(424242, `{"name":"ghost"}`)
	assert.ErrorIs(suite.T(), err, service.ErrAssetNotFound)
}

func (suite *AssetStoreTestSuite) TestDelete() {
	created := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")

	suite.Require().NoError(suite.service.DeleteAsset(context.Background(), created.ID))

	_, err := suite.service.FindAsset(context.Background(), created.ID)
	assert.ErrorIs(suite.T(), err, service.ErrAssetNotFound)

	err = suite.service.DeleteAsset(context.Background(), created.ID)
	assert.ErrorIs(suite.T(), err, service.ErrAssetNotFound)

	// the serial number is free again
	suite.create("Dell XPS 15", "DXPS15-001", "Laptop")
}

func (suite *AssetStoreTestSuite) TestIdsNotReusedAfterDelete() {
	a := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")
	b := suite.create("Canon EOS R5", "CEOSR5-001", "Camera")
	suite.Require().Greater(b.ID, a.ID)

	suite.Require().NoError(suite.service.DeleteAsset(context.Background(), b.ID))
	c := suite.create("HP LaserJet", "HPLJ-003", "Office Equipment")
	assert.Greater(suite.T(), c.ID, b.ID)
}

func (suite *AssetStoreTestSuite) TestSearch() {
	xps := suite.create("Dell XPS 15", "DXPS15-001", "Laptop")
	canon := suite.create("Canon EOS R5", "CEOSR5-001", "Camera")
	printer := suite.create("HP LaserJet", "HPLJ-003", "Office Equipment")

	search := func(term string) []int64 {
		assets, err := suite.service.ListAssets(context.Background(), service.ListAssetsParams{Search: term})
		suite.Require().NoError(err)
		ids := []int64{}
		for _, a := range assets {
			ids = append(ids, a.ID)
		}
		return ids
	}

	assert.Equal(suite.T(), []int64{xps.ID}, search("xps"))
	assert.Equal(suite.T(), []int64{xps.ID}, search("LAPTOP"))
	assert.Equal(suite.T(), []int64{canon.ID}, search("ceosr5"))
	assert.Equal(suite.T(), []int64{xps.ID, canon.ID, printer.ID}, search("-00"))
	assert.Equal(suite.T(), []int64{xps.ID, canon.ID, printer.ID}, search(""))
	assert.Empty(suite.T(), search("zzz"))
	assert.Empty(suite.T(), search("%"))
	assert.Empty(suite.T(), search("_"))
}

func (suite *AssetStoreTestSuite) TestSkipAndLimit() {
	ids := []int64{}
	for _, serial := range []string{"SN-1", "SN-2", "SN-3", "SN-4", "SN-5"} {
		ids = append(ids, suite.create("Asset "+serial, serial, "Laptop").ID)
	}

	assets, err := suite.service.ListAssets(context.Background(), service.ListAssetsParams{Skip: 1, Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(assets, 2)
	assert.Equal(suite.T(), ids[1], assets[0].ID)
	assert.Equal(suite.T(), ids[2], assets[1].ID)

	assets, err = suite.service.ListAssets(context.Background(), service.ListAssetsParams{Skip: 10})
	suite.Require().NoError(err)
	assert.Empty(suite.T(), assets)

	_, err = suite.service.ListAssets(context.Background(), service.ListAssetsParams{Skip: -1})
	var validationErr *service.ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
}

func (suite *AssetStoreTestSuite) TestSeedSkipsExistingSerialNumbers() {
	now := time.Now().UTC()
	result, err := suite.service.Seed(context.Background(), service.SampleAssets(now))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 10, result.Created)
	assert.Equal(suite.T(), 0, result.Skipped)

	result, err = suite.service.Seed(context.Background(), service.SampleAssets(now))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 0, result.Created)
	assert.Equal(suite.T(), 10, result.Skipped)

	result, err = suite.service.Seed(context.Background(), service.RandomAssets(3, now))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 3, result.Created)

	retired, err := suite.service.FindAssetBySerial(context.Background(), "EPEB-2023-010")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.AssetStatusRetired, retired.Status)
}

func TestAssetStoreTestSuite(t *testing.T) {
	suite.Run(t, new(AssetStoreTestSuite))
}
