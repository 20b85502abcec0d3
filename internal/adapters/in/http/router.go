package http

import (
	"net/http"

	"parcelhub/api"
	"parcelhub/internal/core/application/access"
	"parcelhub/internal/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig carries what NewRouter wires besides the server itself.
type RouterConfig struct {
	Gate     *access.Gate
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Document *openapi3.T
}

// NewRouter returns an echo instance serving si together with the health,
// metrics and API document endpoints.
func NewRouter(si ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(Observe(logger, cfg.Metrics))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	if cfg.Document != nil {
		if err := api.RegisterSwagger(cfg.Document); err != nil {
			return nil, err
		}
		doc := cfg.Document
		e.GET("/openapi.json", func(c echo.Context) error {
			return c.JSON(http.StatusOK, doc)
		})
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	RegisterHandlers(e, si, RequireToken(cfg.Gate))
	return e, nil
}
