package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JustUsingaWebsite/survey-powerops/internal/surveyops"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	NewHandler(zap.NewNop()).RegisterRoutes(e)
	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestComputeSampleSizeOK(t *testing.T) {
	body := `{
	  "operation": "samplesize",
	  "datasets": {
	    "totals":     {"rows": [["10"]]},
	    "strata":     {"rows": [["1"]]},
	    "variances":  {"rows": [["5"]]},
	    "population": {"rows": [["8"]]},
	    "target_cvs": {"rows": [["4.9"]]}
	  }
	}`
	rec := postJSON(newTestServer(), "/api/samplesize", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var res surveyops.SampleSizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Rows, 1)
	assert.Nil(t, res.Error)
	assert.InDelta(t, 320.0/40.2401, float64(res.Rows[0].SampleSize), 1e-9)
}

func TestComputeSampleSizeValidationFailure(t *testing.T) {
	body := `{
	  "operation": "samplesize",
	  "datasets": {
	    "totals":     {"rows": [["10"]]},
	    "strata":     {"rows": [["1"]]},
	    "variances":  {"rows": [["5", "6"]]},
	    "population": {"rows": [["8"]]},
	    "target_cvs": {"rows": [["4.9"]]}
	  }
	}`
	rec := postJSON(newTestServer(), "/api/samplesize", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var res surveyops.SampleSizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	assert.Contains(t, *res.Error, "variances: column count 2")
}

func TestComputeSampleSizeBadBody(t *testing.T) {
	rec := postJSON(newTestServer(), "/api/samplesize", `{"operation":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
