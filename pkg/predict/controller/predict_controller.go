package controller

import "github.com/labstack/echo/v4"

type PredictController interface {
	Predict(echo.Context) error
	Result(echo.Context) error
	History(echo.Context) error
	Stats(echo.Context) error
}
