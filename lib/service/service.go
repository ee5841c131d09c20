package service

import (
	"github.com/getAlby/assethub.go/lib/qr"
	"github.com/getAlby/assethub.go/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type AssetService struct {
	Config  *Config
	DB      *bun.DB
	Logger  *lecho.Logger
	QRCodec *qr.Codec
	// nil when RABBITMQ_URI is not configured
	RabbitMQClient rabbitmq.Client
}

// NewQRCodec builds the codec described by the QR_* settings.
func NewQRCodec(c *Config) *qr.Codec {
	options := []qr.Option{qr.WithModuleSize(c.QRModuleSize)}
	if !c.QRScanEnabled {
		options = append(options, qr.WithoutScanner())
	}
	return qr.NewCodec(options...)
}
