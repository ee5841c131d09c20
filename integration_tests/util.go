package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"time"

	"github.com/getAlby/assethub.go/db"
	"github.com/getAlby/assethub.go/db/migrations"
	"github.com/getAlby/assethub.go/db/models"
	"github.com/getAlby/assethub.go/lib/logging"
	"github.com/getAlby/assethub.go/lib/responses"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/getAlby/assethub.go/lib/transport"
	"github.com/getAlby/assethub.go/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun/migrate"
)

type TestServiceOption = func(c *service.Config)

func withoutQRScanner() TestServiceOption {
	return func(c *service.Config) {
		c.QRScanEnabled = false
	}
}

// AssetHubTestServiceInit returns a service backed by its own in-memory
// sqlite database, migrated to the latest schema.
func AssetHubTestServiceInit(rabbitmqClient rabbitmq.Client, options ...TestServiceOption) (svc *service.AssetService, err error) {
	c := &service.Config{
		DatabaseUri:             fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", uuid.NewString()),
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		DefaultRateLimit:        1000,
		StrictRateLimit:         1000,
		BurstRateLimit:          1000,
		BodyLimit:               "10M",
		CORSAllowOrigins:        []string{"*"},
		QRModuleSize:            10,
		QRScanEnabled:           true,
	}
	for _, opt := range options {
		opt(c)
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := logging.Logger(c.LogFilePath)
	svc = &service.AssetService{
		Config:         c,
		DB:             dbConn,
		Logger:         logger,
		QRCodec:        service.NewQRCodec(c),
		RabbitMQClient: rabbitmqClient,
	}
	return svc, nil
}

// newTestEcho wires the service the same way the server binary does.
func newTestEcho(svc *service.AssetService) *echo.Echo {
	e := transport.InitEcho(svc.Config, svc.Logger)
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(svc.Config.StrictRateLimit, svc.Config.BurstRateLimit)
	transport.RegisterSystemEndpoints(e)
	transport.RegisterAssetEndpoints(svc, e.Group(""), strictRateLimitMiddleware)
	transport.RegisterAssetEndpoints(svc, e.Group("/api/v1"), strictRateLimitMiddleware)
	return e
}

func clearAssets(svc *service.AssetService) error {
	_, err := svc.DB.NewDelete().Model((*models.Asset)(nil)).Where("1 = 1").Exec(context.Background())
	return err
}

func strPtr(s string) *string { return &s }

func newAssetParams(name, serialNumber, category string) *service.CreateAssetParams {
	purchaseDate := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &service.CreateAssetParams{
		Name:          name,
		Description:   strPtr(name + " description"),
		SerialNumber:  serialNumber,
		Category:      category,
		Location:      strPtr("Office A"),
		PurchaseDate:  &purchaseDate,
		PurchasePrice: 1500,
		AssetMetadata: map[string]interface{}{"owner": "IT"},
	}
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (suite *TestSuite) doRequest(method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) uploadFile(target, contentType string, data []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="label.png"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	assert.NoError(suite.T(), err)
	_, err = part.Write(data)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) decodeAsset(rec *httptest.ResponseRecorder) *models.Asset {
	asset := &models.Asset{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(asset))
	return asset
}

func checkErrResponse(suite *TestSuite, rec *httptest.ResponseRecorder, expected responses.ErrorResponse) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	assert.Equal(suite.T(), expected.HttpStatusCode, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Equal(suite.T(), expected.Code, errorResponse.Code)
	return errorResponse
}
