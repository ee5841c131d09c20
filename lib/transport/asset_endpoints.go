package transport

import (
	"github.com/getAlby/assethub.go/controllers"
	"github.com/getAlby/assethub.go/lib/service"
	"github.com/labstack/echo/v4"
)

// RegisterAssetEndpoints mounts the asset routes on group. Scanning decodes
// uploaded images and gets the strict rate limit.
func RegisterAssetEndpoints(svc *service.AssetService, group *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc) {
	assetCtrl := controllers.NewAssetController(svc)
	qrCtrl := controllers.NewQRController(svc)

	group.GET("/assets", assetCtrl.ListAssets)
	group.POST("/assets", assetCtrl.CreateAsset)
	group.POST("/assets/scan", qrCtrl.Scan, strictRateLimitMiddleware)
	group.GET("/assets/by-serial/:serial_number", assetCtrl.GetAssetBySerial)
	group.GET("/assets/:id", assetCtrl.GetAsset)
	group.PUT("/assets/:id", assetCtrl.UpdateAsset)
	group.PATCH("/assets/:id", assetCtrl.UpdateAsset)
	group.DELETE("/assets/:id", assetCtrl.DeleteAsset)
	group.GET("/assets/:id/qr", qrCtrl.AssetQRCode)
}

func RegisterSystemEndpoints(e *echo.Echo) {
	e.GET("/", controllers.NewHomeController().Home)
	e.GET("/health", controllers.NewHealthController().Check)
}
