package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fertiq/pkg/ml"
)

var appStart = time.Now()

type HealthCtrl struct {
	db     *gorm.DB
	bundle *ml.Bundle
}

func NewHealthCtrl(db *gorm.DB, bundle *ml.Bundle) *HealthCtrl {
	return &HealthCtrl{db: db, bundle: bundle}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			dbOK = false
			dbErr = "db.DB(): " + err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbOK = false
			dbErr = "ping: " + err.Error()
		}
	} else {
		dbOK = false
		dbErr = "gorm db is nil"
	}

	modelsOK := h.bundle != nil && h.bundle.Classifier != nil && h.bundle.Regressor != nil

	allOK := dbOK && modelsOK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	models := map[string]any{"ok": modelsOK}
	if modelsOK {
		models["classifier_trees"] = len(h.bundle.Classifier.Trees)
		models["regressor_trees"] = len(h.bundle.Regressor.Trees)
		models["trained_at"] = h.bundle.CreatedAt.Format(time.RFC3339)
		models["dataset"] = h.bundle.Meta.Dataset
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": sub{OK: dbOK, Err: dbErr},
			"models":   models,
		},
		"time": time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
