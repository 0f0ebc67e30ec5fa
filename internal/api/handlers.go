package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/survey-powerops/internal/surveyops"
)

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/samplesize", h.ComputeSampleSize)
	e.GET("/healthz", h.Healthz)
}

// --- HANDLERS ---

// ComputeSampleSize runs the calculator on a JSON request body. Validation
// failures come back as 422 with the response's error field set; a body
// that does not bind at all is a 400.
func (h *Handler) ComputeSampleSize(c echo.Context) error {
	var req surveyops.SampleSizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := surveyops.ComputeSampleSize(req)
	if err != nil {
		h.logger.Warn("samplesize rejected",
			zap.String("operation", req.Operation),
			zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, res)
	}

	h.logger.Info("samplesize computed",
		zap.String("operation", req.Operation),
		zap.Int("strata", res.Summary.Strata),
		zap.Int("variables", res.Summary.Variables),
		zap.Int("rows", res.Summary.Rows),
		zap.Int64("duration_ms", res.Summary.DurationMS))
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
