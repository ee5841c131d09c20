package controllers

import (
	"net/http"
	"strconv"

	"github.com/getAlby/assethub.go/lib/responses"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// AssetController : Asset CRUD controller struct
type AssetController struct {
	svc *service.AssetService
}

func NewAssetController(svc *service.AssetService) *AssetController {
	return &AssetController{svc: svc}
}

type ListAssetsQuery struct {
	Search string `query:"search"`
	Skip   int    `query:"skip" validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=0"`
}

type DeleteAssetResponseBody struct {
	Message string `json:"message"`
}

// ListAssets godoc
// @Summary      List assets
// @Description  Returns assets in insertion order, optionally filtered by a case-insensitive search over name, serial number and category
// @Produce      json
// @Tags         Asset
// @Param        search  query  string  false  "Search term"
// @Param        skip    query  int     false  "Number of assets to skip"
// @Param        limit   query  int     false  "Maximum number of assets (default 100, max 1000)"
// @Success      200  {object}  []models.Asset
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /assets [get]
func (controller *AssetController) ListAssets(c echo.Context) error {
	var query ListAssetsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		c.Logger().Errorf("Failed to load list assets query params: %v", err)
		return respond(c, responses.BadArgumentsError.WithDetail("skip and limit must be integers"))
	}
	if err := c.Validate(&query); err != nil {
		c.Logger().Errorf("Invalid list assets query params: %v", err)
		return respond(c, responses.BadArgumentsError.WithDetail("skip and limit must not be negative"))
	}

	assets, err := controller.svc.ListAssets(c.Request().Context(), service.ListAssetsParams{
		Skip:   query.Skip,
		Limit:  query.Limit,
		Search: query.Search,
	})
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, assets)
}

// CreateAsset godoc
// @Summary      Create an asset
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        asset  body      service.CreateAssetParams  true  "Asset"
// @Success      201    {object}  models.Asset
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      409    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /assets [post]
func (controller *AssetController) CreateAsset(c echo.Context) error {
	var body service.CreateAssetParams
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create asset request body: %v", err)
		return respond(c, responses.BadArgumentsError.WithDetail("request body is not a valid asset"))
	}

	asset, err := controller.svc.CreateAsset(c.Request().Context(), &body)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusCreated, asset)
}

// GetAsset godoc
// @Summary      Retrieve an asset
// @Produce      json
// @Tags         Asset
// @Param        id   path      int  true  "Asset id"
// @Success      200  {object}  models.Asset
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /assets/{id} [get]
func (controller *AssetController) GetAsset(c echo.Context) error {
	id, err := assetID(c)
	if err != nil {
		return respond(c, responses.BadArgumentsError.WithDetail("id must be an integer"))
	}
	asset, err := controller.svc.FindAsset(c.Request().Context(), id)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// GetAssetBySerial godoc
// @Summary      Retrieve an asset by serial number
// @Produce      json
// @Tags         Asset
// @Param        serial_number  path      string  true  "Serial number"
// @Success      200            {object}  models.Asset
// @Failure      404            {object}  responses.ErrorResponse
// @Router       /assets/by-serial/{serial_number} [get]
func (controller *AssetController) GetAssetBySerial(c echo.Context) error {
	asset, err := controller.svc.FindAssetBySerial(c.Request().Context(), c.Param("serial_number"))
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// UpdateAsset godoc
// @Summary      Partially update an asset
// @Description  Only attributes present in the body are changed. An explicit null clears an optional attribute.
// @Accept       json
// @Produce      json
// @Tags         Asset
// @Param        id     path      int                  true  "Asset id"
// @Param        asset  body      service.AssetUpdate  true  "Attributes to change"
// @Success      200    {object}  models.Asset
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      404    {object}  responses.ErrorResponse
// @Failure      409    {object}  responses.ErrorResponse
// @Router       /assets/{id} [patch]
func (controller *AssetController) UpdateAsset(c echo.Context) error {
	id, err := assetID(c)
	if err != nil {
		return respond(c, responses.BadArgumentsError.WithDetail("id must be an integer"))
	}
	var body service.AssetUpdate
	// body only, path params would otherwise be bound into the update
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		c.Logger().Errorf("Failed to load update asset request body: %v", err)
		return respond(c, responses.BadArgumentsError.WithDetail("request body is not a valid asset update"))
	}

	asset, err := controller.svc.UpdateAsset(c.Request().Context(), id, &body)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// DeleteAsset godoc
// @Summary      Delete an asset
// @Produce      json
// @Tags         Asset
// @Param        id   path      int  true  "Asset id"
// @Success      200  {object}  DeleteAssetResponseBody
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /assets/{id} [delete]
func (controller *AssetController) DeleteAsset(c echo.Context) error {
	id, err := assetID(c)
	if err != nil {
		return respond(c, responses.BadArgumentsError.WithDetail("id must be an integer"))
	}
	if err := controller.svc.DeleteAsset(c.Request().Context(), id); err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, &DeleteAssetResponseBody{Message: "Asset deleted successfully"})
}

func assetID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
