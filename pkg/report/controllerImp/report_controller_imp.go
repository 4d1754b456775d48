package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fertiq/pkg/predict/repository"
	"fertiq/pkg/report"
)

type ReportCtrl struct{ repo repository.PredictionRepository }

func New(repo repository.PredictionRepository) *ReportCtrl { return &ReportCtrl{repo: repo} }

// ExportXLSX streams the full prediction history as a spreadsheet.
func (h *ReportCtrl) ExportXLSX(c echo.Context) error {
	rows, err := h.repo.All()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	f, err := report.BuildWorkbook(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="predictions.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
