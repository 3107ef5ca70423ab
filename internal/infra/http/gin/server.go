package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"balilove/internal/infra/config"
	"balilove/internal/infra/obs"
)

type QuoteHTTP interface {
	Quote(c *gin.Context)
	Packages(c *gin.Context)
	PackageQuote(c *gin.Context)
}

type CurrencyHTTP interface {
	Convert(c *gin.Context)
	Rates(c *gin.Context)
	RateInfo(c *gin.Context)
	Refresh(c *gin.Context)
}

type Handlers struct {
	Quotes   QuoteHTTP
	Currency CurrencyHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the gin engine without binding it to an address.
func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(obsMW.RequestID())
	router.Use(obsMW.Recovery())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Quotes != nil {
		api.POST("/quotes", h.Quotes.Quote)
		api.GET("/packages", h.Quotes.Packages)
		api.GET("/packages/:id/quote", h.Quotes.PackageQuote)
	}
	if h.Currency != nil {
		currency := api.Group("/currency")
		currency.GET("/convert", h.Currency.Convert)
		currency.GET("/rates", h.Currency.RateInfo)
		currency.GET("/rates/table", h.Currency.Rates)
		currency.POST("/rates/refresh", h.Currency.Refresh)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
