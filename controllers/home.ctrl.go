package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeController : HomeController struct
type HomeController struct{}

func NewHomeController() *HomeController {
	return &HomeController{}
}

type HomeResponse struct {
	Message string `json:"message"`
}

func (controller *HomeController) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, &HomeResponse{Message: "Welcome to Asset Management System API"})
}
