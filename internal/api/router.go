package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mmaya/sms-monitoreo/internal/api/handler"
	"github.com/mmaya/sms-monitoreo/internal/api/middleware"
	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Auth        ports.AuthService
	Menus       ports.MenuService
	Roles       ports.RoleService
	Catalogs    ports.CatalogService
	Indicators  ports.IndicatorService
	Users       ports.UserService
	Tracking    ports.TrackingService
	Attachments ports.AttachmentService
	Dashboard   ports.DashboardService
}

// Options configures NewRouter.
type Options struct {
	JWTSecret      string
	LoginRate      float64
	LoginBurst     int
	MaxUploadBytes int64
	// Checks are the readiness checks, by dependency name.
	Checks map[string]handler.DependencyCheck
	// Swagger mounts the API docs at /swagger/*.
	Swagger bool
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	promCfg := echoprometheus.MiddlewareConfig{Subsystem: "sms"}
	metricsHandler := echoprometheus.NewHandler()
	if opts.Registry != nil {
		promCfg.Registerer = opts.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Health checks and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(opts.Checks).Readiness)
	e.GET("/metrics", metricsHandler)
	if opts.Swagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	menuHandler := handler.NewMenuHandler(svc.Menus)
	roleHandler := handler.NewRoleHandler(svc.Roles)
	catalogHandler := handler.NewCatalogHandler(svc.Catalogs)
	indicatorHandler := handler.NewIndicatorHandler(svc.Indicators)
	userHandler := handler.NewUserHandler(svc.Users)
	trackingHandler := handler.NewTrackingHandler(svc.Tracking)
	attachmentHandler := handler.NewAttachmentHandler(svc.Attachments, opts.MaxUploadBytes)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)

	g := e.Group("/api/sms")
	g.POST("/login", authHandler.Login, middleware.RateLimitByIP(opts.LoginRate, opts.LoginBurst))

	p := g.Group("", middleware.Auth(opts.JWTSecret))
	views := func(v ...domain.View) echo.MiddlewareFunc { return middleware.RequireView(svc.Menus, v...) }
	menuAdmin := views(domain.ViewMenu, domain.ViewRoles)
	tracking := views(domain.ViewAccounting, domain.ViewTracking)

	p.GET("/verify-token", authHandler.VerifyToken)

	// --- Menu & access ---
	p.GET("/menu", menuHandler.MyMenu)
	p.GET("/menu-catalog", menuHandler.Catalog)
	p.GET("/roles/:id/menu", menuHandler.RoleMenu)
	p.GET("/roles/:id/access-entries", menuHandler.AccessEntries)
	p.PUT("/access-entries/:id", menuHandler.SetAccessState, menuAdmin)
	p.GET("/menu_admin", menuHandler.AdminItems, menuAdmin)
	p.POST("/menu", menuHandler.CreateItem, menuAdmin)
	p.PUT("/menu/:id", menuHandler.UpdateItem, menuAdmin)

	// --- Roles ---
	p.GET("/roles", roleHandler.List)
	p.POST("/roles", roleHandler.Create, views(domain.ViewRoles))
	p.PUT("/roles/:id", roleHandler.Update, views(domain.ViewRoles))

	// --- Users ---
	p.GET("/usuarios", userHandler.List, views(domain.ViewUsers))
	p.POST("/usuarios", userHandler.Create, views(domain.ViewUsers))
	p.PUT("/usuarios/:id", userHandler.Update, views(domain.ViewUsers))
	p.PUT("/usuarios/:id/clave", userHandler.ChangePassword, views(domain.ViewUsers))

	// --- Areas & user context ---
	p.GET("/areas", catalogHandler.Areas)
	p.GET("/entidades/:id/areas", catalogHandler.AreasByEntity)
	p.POST("/areas", catalogHandler.CreateArea, views(domain.ViewEntities))
	p.PUT("/areas/:id", catalogHandler.UpdateArea, views(domain.ViewEntities))
	p.DELETE("/areas/:id", catalogHandler.DeleteArea, views(domain.ViewEntities))
	p.GET("/contexto_usuario/:id_area", catalogHandler.UserContext)

	// --- Indicators ---
	p.GET("/matriz_parametros", indicatorHandler.List)
	p.POST("/matriz_parametros", indicatorHandler.Create, views(domain.ViewIndicators))
	p.PUT("/matriz_parametros/:id", indicatorHandler.Update, views(domain.ViewIndicators))
	p.GET("/indicadores/area/:id_area", indicatorHandler.ListByArea)

	// --- Tracking & attachments ---
	p.GET("/rendicion/columns", trackingHandler.Columns)
	p.GET("/rendicion/:id_indicador/:gestion", trackingHandler.Get)
	p.POST("/rendicion", trackingHandler.Save, tracking)
	p.GET("/archivos/download/:id", attachmentHandler.Download)
	p.GET("/archivos/:id_indicador/:gestion", attachmentHandler.List)
	p.POST("/archivos", attachmentHandler.Upload, tracking)
	p.DELETE("/archivos/:id", attachmentHandler.Delete, tracking)

	p.GET("/dashboard", dashboardHandler.Summary)

	// --- Reference catalogs; registered last, static routes above win ---
	p.GET("/:kind", catalogHandler.List)
	p.POST("/:kind", catalogHandler.Create, middleware.RequireCatalogView(svc.Menus))
	p.PUT("/:kind/:id", catalogHandler.Update, middleware.RequireCatalogView(svc.Menus))

	return e
}
