package responses

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	Detail         string `json:"detail,omitempty"`
	HttpStatusCode int    `json:"-"`
}

// WithDetail returns a copy of the response carrying a caller-facing explanation.
func (e ErrorResponse) WithDetail(detail string) ErrorResponse {
	e.Detail = detail
	return e
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: http.StatusInternalServerError,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: http.StatusBadRequest,
}

var AssetNotFoundError = ErrorResponse{
	Error:          true,
	Code:           10,
	Message:        "Asset not found",
	HttpStatusCode: http.StatusNotFound,
}

var SerialNumberTakenError = ErrorResponse{
	Error:          true,
	Code:           11,
	Message:        "Serial number already exists",
	HttpStatusCode: http.StatusConflict,
}

var NotAnImageError = ErrorResponse{
	Error:          true,
	Code:           12,
	Message:        "File must be an image",
	HttpStatusCode: http.StatusBadRequest,
}

var InvalidQRCodeError = ErrorResponse{
	Error:          true,
	Code:           13,
	Message:        "Could not read a QR code from the image",
	HttpStatusCode: http.StatusBadRequest,
}

var QRDecoderUnavailableError = ErrorResponse{
	Error:          true,
	Code:           14,
	Message:        "QR code scanning is not available",
	HttpStatusCode: http.StatusInternalServerError,
}

var QRPayloadTooLargeError = ErrorResponse{
	Error:          true,
	Code:           16,
	Message:        "Asset is too large to fit in a QR code",
	HttpStatusCode: http.StatusUnprocessableEntity,
}

var RouteNotFoundError = ErrorResponse{
	Error:          true,
	Code:           15,
	Message:        "Not found",
	HttpStatusCode: http.StatusNotFound,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			c.JSON(he.Code, RouteNotFoundError)
		case http.StatusInternalServerError:
			c.JSON(he.Code, GeneralServerError)
		default:
			c.JSON(he.Code, he.Message)
		}
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// isErrAllowedForSentry keeps client errors (4xx) out of Sentry.
func isErrAllowedForSentry(err error) bool {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code >= http.StatusInternalServerError
	}
	return true
}
