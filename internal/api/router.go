package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/share2care/admin-console/docs"
	"github.com/share2care/admin-console/internal/api/handler"
	"github.com/share2care/admin-console/internal/api/middleware"
	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const roleAdmin = "admin"

// Dependencies are the services the router mounts.
type Dependencies struct {
	Log         zerolog.Logger
	JWTSecret   string
	CORSOrigins []string

	Auth      ports.AuthService
	Users     ports.UserService
	Approval  ports.ApprovalService
	Events    ports.EventService
	Catalog   ports.CatalogService
	Views     ports.ViewService
	Messaging ports.MessagingService
	Dashboard ports.DashboardService

	// Checks are the readiness checks, keyed by dependency name.
	Checks map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("share2care_admin_http"))
	if len(d.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		}))
	}

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	authed := []echo.MiddlewareFunc{middleware.Auth(d.JWTSecret), middleware.Session(d.Auth)}

	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authed...)
	e.GET("/auth/me", authHandler.Me, authed...)

	// --- Admin API ---
	v1 := e.Group("/v1", append(authed, middleware.RBAC(roleAdmin))...)

	users := handler.NewUserHandler(d.Users, d.Approval)
	v1.GET("/users", users.List)
	v1.GET("/users/:id", users.Get)
	v1.PUT("/users/:id/status", users.UpdateStatus)
	v1.PUT("/users/:id/approval", users.Decide)
	v1.DELETE("/users/:id", users.Delete)
	v1.GET("/users/:id/documents", users.Documents)
	v1.GET("/users/:id/approvals", users.History)

	events := handler.NewEventHandler(d.Events)
	v1.GET("/events", events.List)
	v1.POST("/events", events.Create)
	v1.GET("/events/:id", events.Get)
	v1.PUT("/events/:id", events.Update)
	v1.DELETE("/events/:id", events.Delete)
	v1.PUT("/events/:id/status", events.UpdateStatus)
	v1.PUT("/events/:id/featured", events.SetFeatured)

	handler.NewResourceHandler[domain.Category](d.Catalog.Categories()).Register(v1.Group("/categories"))
	handler.NewResourceHandler[domain.Page](d.Catalog.Pages()).Register(v1.Group("/pages"))
	handler.NewResourceHandler[domain.FormOption](d.Catalog.FormOptions()).Register(v1.Group("/form-options"))
	handler.NewResourceHandler[domain.Review](d.Catalog.Reviews()).Register(v1.Group("/reviews"))
	handler.NewResourceHandler[domain.Contact](d.Catalog.Contacts()).Register(v1.Group("/contacts"))

	catalog := handler.NewCatalogHandler(d.Catalog)
	v1.GET("/settings", catalog.ListSettings)
	v1.PUT("/settings/:key", catalog.UpdateSetting)
	v1.PATCH("/form-options/:id/toggle", catalog.ToggleFormOption)
	v1.PUT("/reviews/:id/status", catalog.UpdateReviewStatus)
	v1.PUT("/contacts/:id/status", catalog.UpdateContactStatus)
	v1.POST("/contacts/:id/reply", catalog.ReplyContact)

	views := handler.NewViewHandler(d.Views)
	v1.GET("/views/:entity", views.Get)
	v1.PUT("/views/:entity/filters", views.SetFilter)
	v1.PUT("/views/:entity/page", views.SetPage)
	v1.POST("/views/:entity/refresh", views.Refresh)

	messages := handler.NewMessageHandler(d.Messaging)
	v1.POST("/messages", messages.Send)
	v1.GET("/messages", messages.Recent)

	dashboard := handler.NewDashboardHandler(d.Dashboard)
	v1.GET("/dashboard", dashboard.Stats)
	v1.GET("/reports", dashboard.Report)

	return e
}

// requestLogger writes one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
