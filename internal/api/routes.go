package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"thenumbers/internal/api/handlers"
	"thenumbers/internal/middleware"
	"thenumbers/internal/service"
	"thenumbers/pkg/config"
)

// Options 是建立路由時需要的外部依賴
type Options struct {
	Logger      *slog.Logger
	Metrics     *middleware.Metrics // nil 表示不提供指標端點
	MetricsPath string
	CORSOrigins []string
}

// NewRouter 建立掛載了中間件和路由表的 gin 引擎
func NewRouter(cfg *config.Config, services *service.Services, opts Options) (*gin.Engine, error) {
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Logger))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	r.Use(middleware.Recovery(opts.Logger))
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}

	if err := SetupRoutes(r, services, opts); err != nil {
		return nil, err
	}
	return r, nil
}

// SetupRoutes 建立路由表並掛載到 r，路由重複時在啟動前回傳錯誤
func SetupRoutes(r *gin.Engine, services *service.Services, opts Options) error {
	// 初始化 handlers
	numberHandler := handlers.NewNumberHandler(services.Number, opts.Logger)

	table := NewRouteTable()
	routes := []Route{
		{Method: http.MethodGet, Path: "/even", Handlers: []gin.HandlerFunc{numberHandler.Even}},
		{Method: http.MethodGet, Path: "/random", Handlers: []gin.HandlerFunc{numberHandler.Random}},
		{Method: http.MethodGet, Path: "/health", Handlers: []gin.HandlerFunc{handlers.Health}},
	}
	if opts.Metrics != nil {
		routes = append(routes, Route{
			Method:   http.MethodGet,
			Path:     opts.MetricsPath,
			Handlers: []gin.HandlerFunc{gin.WrapH(opts.Metrics.Handler())},
		})
	}

	for _, route := range routes {
		if err := table.Register(route.Method, route.Path, route.Handlers...); err != nil {
			return err
		}
	}
	table.Mount(r)

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})

	return nil
}
