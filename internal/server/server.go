package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ahmetcinarr/selvigsm/internal/apperr"
	"github.com/ahmetcinarr/selvigsm/internal/auth"
	"github.com/ahmetcinarr/selvigsm/internal/config"
	"github.com/ahmetcinarr/selvigsm/internal/dto"
	"github.com/ahmetcinarr/selvigsm/internal/handler"
	appmw "github.com/ahmetcinarr/selvigsm/internal/middleware"
	"github.com/ahmetcinarr/selvigsm/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	echo           *echo.Echo
	cfg            *config.Config
	log            zerolog.Logger
	tokens         *auth.TokenIssuer
	sessions       *auth.SessionStore
	authHandler    *handler.AuthHandler
	adminHandler   *handler.AdminSessionHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	contentHandler *handler.ContentHandler
}

func NewServer(
	cfg *config.Config,
	log zerolog.Logger,
	tokens *auth.TokenIssuer,
	sessions *auth.SessionStore,
	authService service.AuthService,
	catalogService service.CatalogService,
	cartService service.CartService,
	orderService service.OrderService,
	contentService service.ContentService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		cfg:            cfg,
		log:            log,
		tokens:         tokens,
		sessions:       sessions,
		authHandler:    handler.NewAuthHandler(authService),
		adminHandler:   handler.NewAdminSessionHandler(authService, sessions, cfg.Admin.SessionCookie, log),
		catalogHandler: handler.NewCatalogHandler(catalogService),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(orderService),
		contentHandler: handler.NewContentHandler(contentService),
	}

	e.HTTPErrorHandler = s.handleError

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authenticate := appmw.Authenticate(s.tokens, s.sessions, s.cfg.Admin.SessionCookie)
	requireAdmin := appmw.RequireAdmin()
	loginLimit := appmw.RateLimit(s.cfg.RateLimit.RequestsPerSecond, s.cfg.RateLimit.Burst)

	// -------- auth --------
	api.POST("/auth/register", s.authHandler.Register, loginLimit)
	api.POST("/auth/login", s.authHandler.Login, loginLimit)
	api.GET("/auth/me", s.authHandler.Me, authenticate)

	// -------- catalog --------
	api.GET("/categories", s.catalogHandler.ListCategories)
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:slug", s.catalogHandler.GetProduct)
	api.GET("/accessories", s.catalogHandler.ListAccessories)
	api.GET("/content/:key", s.contentHandler.Get)

	// -------- cart / orders --------
	cart := api.Group("/cart", authenticate)
	cart.GET("", s.cartHandler.List)
	cart.POST("", s.cartHandler.Add)
	cart.GET("/total", s.cartHandler.Total)
	cart.PUT("/:id", s.cartHandler.Update)
	cart.DELETE("/:id", s.cartHandler.Remove)
	cart.DELETE("", s.cartHandler.Clear)

	api.POST("/orders", s.orderHandler.Checkout, authenticate)
	api.GET("/orders", s.orderHandler.List, authenticate)

	// -------- admin --------
	api.POST("/admin/login", s.adminHandler.Login, loginLimit)
	api.POST("/admin/logout", s.adminHandler.Logout)

	admin := api.Group("/admin", authenticate, requireAdmin)
	admin.GET("/products", s.catalogHandler.AdminListProducts)
	admin.POST("/products", s.catalogHandler.AdminCreateProduct)
	admin.PUT("/products/:id", s.catalogHandler.AdminUpdateProduct)
	admin.DELETE("/products/:id", s.catalogHandler.AdminDeleteProduct)
	admin.GET("/users", s.catalogHandler.AdminListUsers)
	admin.GET("/orders", s.orderHandler.AdminList)
	admin.PUT("/content/:key", s.contentHandler.AdminUpdate)
}

// handleError converts any failure into the JSON error envelope.
// Internal errors are logged with context; their raw text reaches the
// caller only outside production.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, dto.ErrorResponse{Error: msg})
		return
	}

	appErr := apperr.From(err)
	status := appErr.Kind.Status()

	if appErr.Kind == apperr.Internal {
		s.log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")

		msg := "internal server error"
		if s.cfg.Environment.Debug() {
			msg = err.Error()
		}
		_ = c.JSON(status, dto.ErrorResponse{Error: msg})
		return
	}

	resp := dto.ErrorResponse{
		Error:  appErr.Message,
		Errors: appErr.Fields,
	}
	if appErr.RetryAfter > 0 {
		seconds := int(appErr.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		resp.RetryAfter = seconds
		c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	_ = c.JSON(status, resp)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
