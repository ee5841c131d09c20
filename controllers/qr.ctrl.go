package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/getAlby/assethub.go/lib/responses"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// QRController : QR render and scan controller struct
type QRController struct {
	svc *service.AssetService
}

func NewQRController(svc *service.AssetService) *QRController {
	return &QRController{svc: svc}
}

// AssetQRCode godoc
// @Summary      Render the QR code of an asset
// @Description  PNG QR code embedding id, name, serial number and category of the asset
// @Produce      png
// @Tags         QR
// @Param        id   path      int  true  "Asset id"
// @Success      200  {file}    binary
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      422  {object}  responses.ErrorResponse
// @Router       /assets/{id}/qr [get]
func (controller *QRController) AssetQRCode(c echo.Context) error {
	id, err := assetID(c)
	if err != nil {
		return respond(c, responses.BadArgumentsError.WithDetail("id must be an integer"))
	}
	png, err := controller.svc.AssetQRCode(c.Request().Context(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// Scan godoc
// @Summary      Scan an uploaded QR code
// @Description  Decodes the asset identity embedded in an uploaded image. The result is not checked against stored assets.
// @Accept       mpfd
// @Produce      json
// @Tags         QR
// @Param        file  formData  file  true  "Image containing a QR code"
// @Success      200   {object}  qr.Projection
// @Failure      400   {object}  responses.ErrorResponse
// @Failure      500   {object}  responses.ErrorResponse
// @Router       /assets/scan [post]
func (controller *QRController) Scan(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Logger().Errorf("Failed to read uploaded file: %v", err)
		return respond(c, responses.BadArgumentsError.WithDetail("file is required"))
	}
	if !strings.HasPrefix(fileHeader.Header.Get(echo.HeaderContentType), "image/") {
		return respond(c, responses.NotAnImageError)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	projection, err := controller.svc.ScanQRCode(c.Request().Context(), data)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, projection)
}
