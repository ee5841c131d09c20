package qr

import (
	"errors"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
)

type zxingScanner struct {
	hints map[gozxing.DecodeHintType]interface{}
}

func NewZXingScanner() Scanner {
	return &zxingScanner{
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
			// go-qrcode writes byte segments without an ECI header
			gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
		},
	}
}

func (s *zxingScanner) Scan(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", &DecodeError{Reason: ReasonInvalidImage, Err: err}
	}
	// readers keep per-decode state, so each scan gets its own
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, s.hints)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return "", &DecodeError{Reason: ReasonNoSymbol, Err: err}
		}
		return "", &DecodeError{Reason: ReasonCorruptSymbol, Err: err}
	}
	return result.GetText(), nil
}
