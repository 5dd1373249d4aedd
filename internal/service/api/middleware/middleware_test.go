package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkkaiser/dag-health-monitor/internal/service/api/constants"
	"github.com/darkkaiser/dag-health-monitor/internal/service/api/httputil"
	applog "github.com/darkkaiser/dag-health-monitor/pkg/log"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPanicRecovery(t *testing.T) {
	e := newEcho()
	e.Use(PanicRecovery())
	e.GET("/boom", func(c echo.Context) error { panic("boom") })
	e.GET("/err", func(c echo.Context) error { panic(errors.New("typed")) })

	for _, path := range []string{"/boom", "/err"} {
		rec := serve(e, http.MethodGet, path)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"result_code":500`, path)
	}
}

func TestRequestID(t *testing.T) {
	e := newEcho()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	t.Run("생성", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/")

		assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), requestIDLength)
	})

	t.Run("클라이언트 값 유지", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "client-id")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "client-id", rec.Header().Get(echo.HeaderXRequestID))
	})
}

func TestRateLimiting(t *testing.T) {
	e := newEcho()
	e.Use(RateLimiting(1, 2))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/").Code)

	rec := serve(e, http.MethodGet, "/")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiting_IP별_분리(t *testing.T) {
	e := newEcho()
	e.Use(RateLimiting(1, 1))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, ip)
	}
}

func TestRateLimiting_잘못된_설정(t *testing.T) {
	assert.Panics(t, func() { RateLimiting(0, 1) })
	assert.Panics(t, func() { RateLimiting(1, 0) })
}

func TestIPRateLimiter_동시_접근(t *testing.T) {
	l := newIPRateLimiter(10, 10)

	var wg sync.WaitGroup
	got := make([]any, 50)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = l.get("192.168.0.1")
		}()
	}
	wg.Wait()

	for _, g := range got {
		assert.Same(t, got[0], g)
	}
}

type httpObservation struct {
	method, route string
	code          int
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []httpObservation
}

func (r *recordingObserver) ObserveHTTP(method, route string, code int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, httpObservation{method, route, code})
}

func TestMetrics(t *testing.T) {
	obs := &recordingObserver{}
	e := newEcho()
	e.Use(Metrics(obs))
	e.GET("/items/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/fail", func(c echo.Context) error { return httputil.NewBadRequestError("bad") })

	serve(e, http.MethodGet, "/items/42")
	rec := serve(e, http.MethodGet, "/fail")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, obs.obs, 2)
	assert.Equal(t, httpObservation{http.MethodGet, "/items/:id", http.StatusOK}, obs.obs[0])
	assert.Equal(t, httpObservation{http.MethodGet, "/fail", http.StatusBadRequest}, obs.obs[1])
}

func TestHTTPLogger_에러_응답(t *testing.T) {
	e := newEcho()
	e.Use(HTTPLogger())
	e.GET("/fail", func(c echo.Context) error { return httputil.NewNotFoundError("없음") })

	rec := serve(e, http.MethodGet, "/fail")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "없음")
}

func TestHTTPLogger_접근_로그(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	e := newEcho()
	e.Use(HTTPLogger())
	e.GET("/items/:id", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	serve(e, http.MethodGet, "/items/7")
	serve(e, http.MethodGet, "/boom")

	var access []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Data["component"] == constants.ComponentMiddleware {
			access = append(access, entry)
		}
	}
	require.Len(t, access, 2)

	assert.Equal(t, logrus.InfoLevel, access[0].Level)
	assert.Equal(t, "/items/:id", access[0].Data["route"])
	assert.Equal(t, http.StatusOK, access[0].Data["status"])
	assert.Equal(t, int64(2), access[0].Data["bytes"])

	assert.Equal(t, logrus.WarnLevel, access[1].Level)
	assert.Equal(t, http.StatusInternalServerError, access[1].Data["status"])
}

func TestLogger_레벨_변환(t *testing.T) {
	l := Logger{Logger: logrus.New()}

	for _, lvl := range []log.Lvl{log.DEBUG, log.INFO, log.WARN, log.ERROR} {
		l.SetLevel(lvl)
		assert.Equal(t, lvl, l.Level())
	}

	l.Logger.SetLevel(applog.TraceLevel)
	assert.Equal(t, log.OFF, l.Level())
	assert.Equal(t, "", l.Prefix())
	assert.NotNil(t, l.Output())
}

var _ echo.Logger = Logger{}
