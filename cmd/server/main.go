package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"fertiq/config"
	"fertiq/database"
	"fertiq/router"

	// Auth
	authCtrlImp "fertiq/pkg/auth/controllerImp"
	authRepoImp "fertiq/pkg/auth/repositoryImp"
	authSvcImp "fertiq/pkg/auth/serviceImp"

	// Prediction pipeline
	predCtrlImp "fertiq/pkg/predict/controllerImp"
	predRepoImp "fertiq/pkg/predict/repositoryImp"
	predSvcImp "fertiq/pkg/predict/serviceImp"

	// Reports
	reportCtrlImp "fertiq/pkg/report/controllerImp"

	// KB
	kbCtrlImp "fertiq/pkg/kb/controllerImp"
	kbRepoImp "fertiq/pkg/kb/repositoryImp"
	kbSvcImp "fertiq/pkg/kb/serviceImp"

	// Health
	healthCtrlImp "fertiq/pkg/health/controllerImp"

	"fertiq/pkg/ml"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer logger.Sync()

	// 3) Trained artifacts — refuse to serve without them
	bundle, err := ml.LoadBundle(cfg.ModelBundle)
	if err != nil {
		log.Fatalf("load model bundle %s: %v", cfg.ModelBundle, err)
	}
	logger.Info("model bundle loaded",
		zap.String("path", cfg.ModelBundle),
		zap.String("dataset", bundle.Meta.Dataset),
		zap.Float64("accuracy", bundle.Meta.Accuracy),
		zap.Float64("mae", bundle.Meta.MAE),
	)

	// 4) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 5) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Static("/static", cfg.StaticDir)
	e.File("/", cfg.StaticDir+"/index.html")
	if _, err := os.Stat(cfg.StaticDir + "/index.html"); err != nil {
		log.Printf("WARN: %s/index.html not found: %v", cfg.StaticDir, err)
	}

	// 6) Repos/Services/Controllers
	aRepo := authRepoImp.New(db)
	aSvc := authSvcImp.New(aRepo, time.Duration(cfg.SessionTTLH)*time.Hour)
	aCtrl := authCtrlImp.New(aSvc)

	pRepo := predRepoImp.New(db)
	pSvc := predSvcImp.New(bundle.Classifier, bundle.Regressor, bundle.Encoders, pRepo, logger)
	pCtrl := predCtrlImp.New(pSvc, pRepo)

	rCtrl := reportCtrlImp.New(pRepo)

	kRepo := kbRepoImp.New(db)
	kSvc := kbSvcImp.New(kRepo)
	kCtrl := kbCtrlImp.New(kSvc)

	hCtrl := healthCtrlImp.NewHealthCtrl(db, bundle)

	// 7) Router
	r := router.New(e, aSvc, aCtrl, pCtrl, rCtrl.ExportXLSX, kCtrl, hCtrl)

	// 8) Start
	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
