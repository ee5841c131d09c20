package service

import (
	"context"
	"errors"

	"github.com/getAlby/assethub.go/lib/qr"
)

// AssetQRCode renders the identity projection of a stored asset as a PNG.
func (svc *AssetService) AssetQRCode(ctx context.Context, id int64) ([]byte, error) {
	asset, err := svc.FindAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := svc.QRCodec.Encode(qr.Projection{
		ID:           asset.ID,
		Name:         asset.Name,
		SerialNumber: asset.SerialNumber,
		Category:     asset.Category,
	})
	if err != nil {
		return nil, err
	}
	qrRenderCounter.Inc()
	return png, nil
}

// ScanQRCode decodes an uploaded image. The projection is returned as
// embedded in the symbol, it is not checked against the store.
func (svc *AssetService) ScanQRCode(ctx context.Context, data []byte) (*qr.Projection, error) {
	projection, err := svc.QRCodec.Decode(data)
	if err != nil {
		var decodeErr *qr.DecodeError
		switch {
		case errors.As(err, &decodeErr):
			qrScanCounter.WithLabelValues(decodeErr.Reason).Inc()
		case errors.Is(err, qr.ErrDecoderUnavailable):
			qrScanCounter.WithLabelValues("unavailable").Inc()
		}
		return nil, err
	}
	qrScanCounter.WithLabelValues("ok").Inc()
	return projection, nil
}
