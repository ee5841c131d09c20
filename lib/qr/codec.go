// Package qr renders asset identities as QR symbols and reads them back from
// uploaded images.
package qr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/skip2/go-qrcode"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const DefaultModuleSize = 10

// MaxPayloadBytes is the byte-mode capacity of a version 40 symbol at the
// Low recovery level.
const MaxPayloadBytes = 2953

var (
	ErrDecoderUnavailable = errors.New("QR code decoding is not available")
	ErrPayloadTooLarge    = errors.New("projection does not fit in a QR symbol")
)

const (
	ReasonInvalidImage     = "invalid image"
	ReasonNoSymbol         = "no symbol found"
	ReasonCorruptSymbol    = "corrupt symbol"
	ReasonMalformedPayload = "malformed payload"
)

// DecodeError means the caller supplied something that does not carry a
// readable projection.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Projection is the part of an asset embedded in its QR symbol.
// Field order is the JSON key order of the payload.
type Projection struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
}

// Scanner finds a symbol in an image and returns its text.
type Scanner interface {
	Scan(img image.Image) (string, error)
}

type Codec struct {
	moduleSize int
	level      qrcode.RecoveryLevel
	scanner    Scanner
}

type Option = func(codec *Codec)

// WithModuleSize sets the PNG size of one QR module in pixels.
func WithModuleSize(px int) Option {
	return func(codec *Codec) {
		if px > 0 {
			codec.moduleSize = px
		}
	}
}

func WithScanner(scanner Scanner) Option {
	return func(codec *Codec) {
		codec.scanner = scanner
	}
}

// WithoutScanner builds an encode-only codec; Decode then fails with
// ErrDecoderUnavailable.
func WithoutScanner() Option {
	return WithScanner(nil)
}

func NewCodec(options ...Option) *Codec {
	codec := &Codec{
		moduleSize: DefaultModuleSize,
		level:      qrcode.Low,
		scanner:    NewZXingScanner(),
	}
	for _, opt := range options {
		opt(codec)
	}
	return codec
}

func (codec *Codec) CanDecode() bool {
	return codec.scanner != nil
}

// Encode renders the projection as a PNG. The QR version grows with the payload.
func (codec *Codec) Encode(p Projection) ([]byte, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	if len(payload) > MaxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}
	symbol, err := qrcode.New(string(payload), codec.level)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR symbol: %w", err)
	}
	// a negative size is interpreted as pixels per module
	return symbol.PNG(-codec.moduleSize)
}

func (codec *Codec) Decode(data []byte) (*Projection, error) {
	if codec.scanner == nil {
		return nil, ErrDecoderUnavailable
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: ReasonInvalidImage, Err: err}
	}
	text, err := codec.scanner.Scan(img)
	if err != nil {
		return nil, err
	}
	return ParsePayload(text)
}

// ParsePayload reads the JSON text embedded in a symbol.
func ParsePayload(text string) (*Projection, error) {
	if !strings.HasPrefix(strings.TrimSpace(text), "{") {
		return nil, &DecodeError{Reason: ReasonMalformedPayload, Err: errors.New("payload is not a JSON object")}
	}
	p := &Projection{}
	if err := json.Unmarshal([]byte(text), p); err != nil {
		return nil, &DecodeError{Reason: ReasonMalformedPayload, Err: err}
	}
	return p, nil
}
