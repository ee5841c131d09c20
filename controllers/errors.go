package controllers

import (
	"errors"

	"github.com/getAlby/assethub.go/lib/qr"
	"github.com/getAlby/assethub.go/lib/responses"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// respondWithError answers known domain errors. Anything else is returned
// unchanged for responses.HTTPErrorHandler.
func respondWithError(c echo.Context, err error) error {
	var (
		validationErr *service.ValidationError
		decodeErr     *qr.DecodeError
	)
	switch {
	case errors.As(err, &validationErr):
		return respond(c, responses.BadArgumentsError.WithDetail(validationErr.Error()))
	case errors.Is(err, service.ErrAssetNotFound):
		return respond(c, responses.AssetNotFoundError)
	case errors.Is(err, service.ErrSerialNumberTaken):
		return respond(c, responses.SerialNumberTakenError)
	case errors.As(err, &decodeErr):
		return respond(c, responses.InvalidQRCodeError.WithDetail(decodeErr.Reason))
	case errors.Is(err, qr.ErrPayloadTooLarge):
		return respond(c, responses.QRPayloadTooLargeError)
	case errors.Is(err, qr.ErrDecoderUnavailable):
		c.Logger().Error(err)
		return respond(c, responses.QRDecoderUnavailableError)
	}
	return err
}

func respond(c echo.Context, response responses.ErrorResponse) error {
	return c.JSON(response.HttpStatusCode, &response)
}
