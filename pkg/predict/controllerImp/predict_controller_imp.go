package controllerImp

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rotisserie/eris"

	"fertiq/pkg/predict/controller"
	"fertiq/pkg/predict/repository"
	"fertiq/pkg/predict/service"
	"fertiq/pkg/predict/types"
)

type PredictCtrl struct {
	svc  service.PredictService
	repo repository.PredictionRepository
}

func New(svc service.PredictService, repo repository.PredictionRepository) controller.PredictController {
	return &PredictCtrl{svc: svc, repo: repo}
}

// Predict runs one submission through the pipeline. User mistakes come back
// as 400 with a redirect hint so the form page can flash and retry; internal
// failures stay generic.
func (h *PredictCtrl) Predict(c echo.Context) error {
	var req types.RawMeasurement
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request", "redirect": "/fert_predict"})
	}

	rec, err := h.svc.Predict(c.Request().Context(), req)
	switch {
	case err == nil:
	case eris.Is(err, types.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":    "All fields are required. Please complete the form.",
			"redirect": "/fert_predict",
		})
	case eris.Is(err, types.ErrConversion):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":    "Something went wrong during prediction. Please check your inputs.",
			"redirect": "/fert_predict",
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Something went wrong during prediction. Please check your inputs.",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"f_name":     rec.FName,
		"f_quantity": fmt.Sprintf("%.2f", rec.FQuantity),
	})
}

// Result backs the result page: it just echoes the query params the predict
// response redirected with.
func (h *PredictCtrl) Result(c echo.Context) error {
	name := c.QueryParam("f_name")
	qty := c.QueryParam("f_quantity")
	if name == "" || qty == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":    "Prediction results not found.",
			"redirect": "/fert_predict",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"f_name": name, "f_quantity": qty})
}

func (h *PredictCtrl) History(c echo.Context) error {
	out, err := h.repo.Recent(50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PredictCtrl) Stats(c echo.Context) error {
	st := h.svc.Stats()
	if n, err := h.repo.Count(); err == nil {
		return c.JSON(http.StatusOK, map[string]any{
			"predictions": st.Predictions,
			"fallbacks":   st.Fallbacks,
			"stored":      n,
		})
	}
	return c.JSON(http.StatusOK, st)
}
