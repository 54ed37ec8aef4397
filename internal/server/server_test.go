//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package server

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/riemann/internal/calc"
)

var fixedNow = time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

// createTestServer returns a Server with a quiet logger and a frozen clock.
func createTestServer(t *testing.T, opts ...calc.Option) *Server {
	t.Helper()
	c, err := calc.New(opts...)
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(c, WithLogger(logger), WithClock(func() time.Time { return fixedNow }))
}

// serveAndRetrieveEndpoint runs one GET through the full handler chain.
func serveAndRetrieveEndpoint(t *testing.T, s *Server, endpoint string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, endpoint, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// retrieveModel decodes the JSON envelope and, when data is non-nil, its payload.
func retrieveModel(t *testing.T, s *Server, endpoint string, data any) (*httptest.ResponseRecorder, ResponseModel) {
	t.Helper()
	rec := serveAndRetrieveEndpoint(t, s, endpoint)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var model ResponseModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	if data != nil {
		raw, err := json.Marshal(model.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return rec, model
}

func TestPrimeHandler(t *testing.T) {
	s := createTestServer(t, calc.WithMaxPrimeN(1000))

	var data primeData
	rec, model := retrieveModel(t, s, "/api/v1/primes/7", &data)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, "OK", model.Text)
	assert.Equal(t, 1, model.Version)
	assert.Equal(t, fixedNow.UnixMilli(), model.CurrentTime)
	assert.Equal(t, primeData{N: 7, Prime: true, Divisors: []int{1, 7}}, data)

	data = primeData{}
	_, _ = retrieveModel(t, s, "/api/v1/primes/12", &data)
	assert.False(t, data.Prime)
	assert.Equal(t, []int{1, 2, 3, 4, 6, 12}, data.Divisors)

	data = primeData{}
	_, _ = retrieveModel(t, s, "/api/v1/primes/0", &data)
	assert.False(t, data.Prime)
	assert.Empty(t, data.Divisors)
}

func TestPrimeHandler_BadInput(t *testing.T) {
	s := createTestServer(t, calc.WithMaxPrimeN(1000))

	rec, model := retrieveModel(t, s, "/api/v1/primes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, model.Code)
	assert.Equal(t, calc.ErrInvalidInteger.Error(), model.Text)
	assert.Nil(t, model.Data)

	rec, model = retrieveModel(t, s, "/api/v1/primes/1001", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, calc.TooLargeError{Max: 1000}.Error(), model.Text)
}

func TestPrimeCountHandler(t *testing.T) {
	s := createTestServer(t)

	var data primeCountData
	rec, _ := retrieveModel(t, s, "/api/v1/pi/100", &data)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, data.N)
	assert.Equal(t, 25, data.Count)
	assert.InDelta(t, 21.71, data.Approximation, 0.01)
	assert.InDelta(t, 3.29, data.Error, 0.01)

	rec, model := retrieveModel(t, s, "/api/v1/pi/-4", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, calc.ErrInvalidInteger.Error(), model.Text)
}

func TestZetaHandler(t *testing.T) {
	s := createTestServer(t)

	var data zetaData
	rec, _ := retrieveModel(t, s, "/api/v1/zeta?s=2", &data)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1000, data.Terms)
	require.NotNil(t, data.Value)
	assert.InDelta(t, 1.6439, *data.Value, 1e-3)
	require.NotNil(t, data.Exact)
	assert.InDelta(t, 1.644934, *data.Exact, 1e-6)
	require.NotNil(t, data.TailBound)
	assert.InDelta(t, 0.001, *data.TailBound, 1e-9)

	data = zetaData{}
	_, _ = retrieveModel(t, s, "/api/v1/zeta?s=3&terms=10", &data)
	assert.Equal(t, 10, data.Terms)
	assert.Nil(t, data.Exact)
	assert.False(t, data.Precise)
}

func TestZetaHandler_Divergent(t *testing.T) {
	s := createTestServer(t)

	rec := serveAndRetrieveEndpoint(t, s, "/api/v1/zeta?s=1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":null`)
	assert.Contains(t, rec.Body.String(), `"tailBound":null`)
	assert.Contains(t, rec.Body.String(), `"precise":false`)
}

func TestZetaHandler_BadInput(t *testing.T) {
	s := createTestServer(t)

	tests := []struct {
		name     string
		endpoint string
		text     string
	}{
		{name: "not a number", endpoint: "/api/v1/zeta?s=x", text: calc.ErrInvalidNumber.Error()},
		{name: "missing s", endpoint: "/api/v1/zeta", text: calc.ErrInvalidNumber.Error()},
		{name: "zero terms", endpoint: "/api/v1/zeta?s=2&terms=0", text: errInvalidTerms.Error()},
		{name: "too many terms", endpoint: "/api/v1/zeta?s=2&terms=1000001", text: errInvalidTerms.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, model := retrieveModel(t, s, tt.endpoint, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.text, model.Text)
		})
	}
}

func TestZerosHandler(t *testing.T) {
	s := createTestServer(t)

	var zeros []struct {
		Real      float64 `json:"real"`
		Imaginary float64 `json:"imaginary"`
	}
	_, _ = retrieveModel(t, s, "/api/v1/zeros?count=3", &zeros)
	require.Len(t, zeros, 3)
	for _, z := range zeros {
		assert.InDelta(t, 0.5, z.Real, 0)
	}
	assert.InDelta(t, 14.134725, zeros[0].Imaginary, 1e-6)

	zeros = nil
	_, _ = retrieveModel(t, s, "/api/v1/zeros", &zeros)
	assert.Len(t, zeros, 10)

	rec, model := retrieveModel(t, s, "/api/v1/zeros?count=many", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, calc.ErrInvalidInteger.Error(), model.Text)
}

func TestEvalHandler(t *testing.T) {
	s := createTestServer(t)

	var data evalData
	rec, _ := retrieveModel(t, s, "/api/v1/eval?expr=1%2B2", &data)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1+2", data.Expression)
	require.NotNil(t, data.Result)
	assert.InDelta(t, 3.0, *data.Result, 0)

	rec, model := retrieveModel(t, s, "/api/v1/eval?expr=foo(", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error: Invalid expression", model.Text)

	for _, expr := range []string{"exp(1000)", "1%2F0", "sqrt(4)%2F0"} {
		rec = serveAndRetrieveEndpoint(t, s, "/api/v1/eval?expr="+expr)
		assert.Equal(t, http.StatusOK, rec.Code, expr)
		assert.Contains(t, rec.Body.String(), `"result":null`, expr)
	}
}

func TestChartHandler(t *testing.T) {
	s := createTestServer(t)

	for _, endpoint := range []string{"/charts/critical-line", "/charts/prime-gaps.svg", "/charts/zeta-zeros"} {
		t.Run(endpoint, func(t *testing.T) {
			rec := serveAndRetrieveEndpoint(t, s, endpoint)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))

			dec := xml.NewDecoder(strings.NewReader(rec.Body.String()))
			for {
				_, err := dec.Token()
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
			}
		})
	}

	rec, model := retrieveModel(t, s, "/charts/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "resource not found", model.Text)
}

func TestHealthAndNotFound(t *testing.T) {
	s := createTestServer(t)

	var data map[string]string
	rec, _ := retrieveModel(t, s, "/healthz", &data)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", data["status"])

	rec, model := retrieveModel(t, s, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, model.Code)
}

func TestRequestLogging_RequestID(t *testing.T) {
	s := createTestServer(t)

	rec := serveAndRetrieveEndpoint(t, s, "/healthz")
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRequestLogging_CapturesStatus(t *testing.T) {
	c, err := calc.New()
	require.NoError(t, err)
	logger := logrus.New()
	var out strings.Builder
	logger.SetOutput(&out)
	logger.SetFormatter(&logrus.JSONFormatter{})
	s := New(c, WithLogger(logger))

	_ = serveAndRetrieveEndpoint(t, s, "/api/v1/primes/abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out.String())), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.InDelta(t, float64(http.StatusBadRequest), entry["status"], 0)
	assert.Equal(t, "/api/v1/primes/abc", entry["path"])
	assert.Equal(t, "http_server", entry["component"])
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	s := createTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_BadAddr(t *testing.T) {
	s := createTestServer(t)
	err := s.ListenAndServe(context.Background(), "127.0.0.1:-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:-1")
}
