package controller

import "github.com/labstack/echo/v4"

type KBController interface {
	IngestText(echo.Context) error
	IngestURL(echo.Context) error
	Search(echo.Context) error
	ListDocs(echo.Context) error
}
