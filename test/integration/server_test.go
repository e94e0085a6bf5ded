package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/neorent/forecast/internal/domain"
	"github.com/neorent/forecast/internal/server"
	"github.com/neorent/forecast/internal/store"
)

func TestServerOverFileSource(t *testing.T) {
	srv := httptest.NewServer(server.New(newEngine(), store.NewFileSource(portfolioPath), zap.NewNop()))
	defer srv.Close()

	get := func(t *testing.T, path string) (*http.Response, []byte) {
		t.Helper()
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, body
	}

	resp, body := get(t, "/api/portfolio")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var report domain.PortfolioReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 3, report.Summary.PropertyCount)
	assert.Equal(t, "31680.00", report.Summary.AnnualProfit.StringFixed(2))

	resp, body = get(t, "/api/properties/"+url.PathEscape("Coloc Canal Saint-Martin")+"/profitability")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var p domain.Profitability
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, domain.RevenueExpected, p.RevenueSource)
	assert.Equal(t, "1680.00", p.MonthlyProfit.StringFixed(2))

	resp, _ = get(t, "/api/portfolio?format=html")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	resp, _ = get(t, "/api/properties/Atelier/profitability")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerMissingFile(t *testing.T) {
	srv := httptest.NewServer(server.New(newEngine(), store.NewFileSource("../testdata/missing.yaml"), zap.NewNop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/portfolio")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
