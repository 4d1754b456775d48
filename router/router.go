package router

import (
	"github.com/labstack/echo/v4"

	"fertiq/pkg/auth/service"
	"fertiq/pkg/middleware"
)

func New(
	e *echo.Echo,
	authSvc service.AuthService,
	authCtrl interface {
		Register(echo.Context) error
		Login(echo.Context) error
		Logout(echo.Context) error
		WhoAmI(echo.Context) error
	},
	predictCtrl interface {
		Predict(echo.Context) error
		Result(echo.Context) error
		History(echo.Context) error
		Stats(echo.Context) error
	},
	exportXLSX func(echo.Context) error,
	kbCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		Search(echo.Context) error
		ListDocs(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.LoadUser(authSvc))

	e.GET("/health", healthCtrl.Health)

	// Auth
	e.POST("/registration", authCtrl.Register)
	e.POST("/acountlogin", authCtrl.Login)
	e.GET("/logout", authCtrl.Logout)
	e.GET("/whoami", authCtrl.WhoAmI)

	// KB endpoints
	e.POST("/kb/ingest", kbCtrl.IngestText)
	e.POST("/kb/ingest/url", kbCtrl.IngestURL)
	e.GET("/kb/search", kbCtrl.Search)
	e.GET("/kb/docs", kbCtrl.ListDocs)

	// Prediction pipeline (login required, like the original pages)
	g := e.Group("", middleware.RequireLogin())
	g.POST("/predict", predictCtrl.Predict)
	g.GET("/FQ_predict_result", predictCtrl.Result)
	g.GET("/predictions", predictCtrl.History)
	g.GET("/predictions/export", exportXLSX)
	g.GET("/predict/stats", predictCtrl.Stats)

	return e
}
