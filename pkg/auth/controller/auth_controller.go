package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	Register(echo.Context) error
	Login(echo.Context) error
	Logout(echo.Context) error
	WhoAmI(echo.Context) error
}
