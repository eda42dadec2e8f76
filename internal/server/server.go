package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"go-storefront/internal/apperr"
	"go-storefront/internal/dto"
	"go-storefront/internal/handler"
	"go-storefront/internal/middleware"
	"go-storefront/internal/model"
	"go-storefront/internal/service"
)

type Server struct {
	echo           *echo.Echo
	logger         *zap.Logger
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	addressHandler *handler.AddressHandler
	orderHandler   *handler.OrderHandler
	authService    service.AuthService
}

func NewServer(
	logger *zap.Logger,
	authService service.AuthService,
	productService service.ProductService,
	cartService service.CartService,
	addressService service.AddressService,
	orderService service.OrderService,
	clientBaseURL string,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request completed",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		logger:         logger,
		authHandler:    handler.NewAuthHandler(authService),
		productHandler: handler.NewProductHandler(productService),
		cartHandler:    handler.NewCartHandler(cartService),
		addressHandler: handler.NewAddressHandler(addressService),
		orderHandler:   handler.NewOrderHandler(orderService, clientBaseURL),
		authService:    authService,
	}

	e.HTTPErrorHandler = s.handleError
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	requireAuth := middleware.JWT(s.authService)
	requireAdmin := middleware.RequireRole(model.RoleAdmin)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/check-auth", s.authHandler.CheckAuth, requireAuth)

	// -------- shop --------
	shop := api.Group("/shop")

	// Public catalog reads and the gateway redirect (the provider's browser
	// round trip carries no session cookie).
	shop.GET("/products/get", s.productHandler.ListFiltered)
	shop.GET("/products/get/:id", s.productHandler.GetDetails)
	shop.GET("/search/:keyword", s.productHandler.Search)
	shop.GET("/order/paypal-return", s.orderHandler.PaypalReturn)

	cart := shop.Group("/cart", requireAuth)
	cart.POST("/add", s.cartHandler.AddToCart)
	cart.GET("/get/:userId", s.cartHandler.GetCart)
	cart.PUT("/update-cart", s.cartHandler.UpdateCart)
	cart.DELETE("/:userId/:productId", s.cartHandler.DeleteItem)

	address := shop.Group("/address", requireAuth)
	address.POST("/add", s.addressHandler.Add)
	address.GET("/get/:userId", s.addressHandler.GetByUser)
	address.PUT("/update/:userId/:addressId", s.addressHandler.Update)
	address.DELETE("/delete/:userId/:addressId", s.addressHandler.Delete)

	order := shop.Group("/order", requireAuth)
	order.POST("/create", s.orderHandler.Create)
	order.POST("/capture", s.orderHandler.Capture)
	order.POST("/card-checkout", s.orderHandler.CardCheckout)
	order.GET("/list/:userId", s.orderHandler.ListByUser)
	order.GET("/details/:id", s.orderHandler.GetDetails)

	// -------- admin --------
	admin := api.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/products/get", s.productHandler.GetAll)
	admin.POST("/products/add", s.productHandler.Add)
	admin.PUT("/products/edit/:id", s.productHandler.Edit)
	admin.DELETE("/products/delete/:id", s.productHandler.Delete)

	admin.GET("/order/list", s.orderHandler.ListAll)
	admin.GET("/order/details/:id", s.orderHandler.GetDetails)
	admin.PUT("/order/:id/status", s.orderHandler.UpdateStatus)
}

// handleError maps the application error taxonomy onto HTTP. Unclassified
// errors become a generic 500; the cause stays in the server log.
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
		_ = c.JSON(httpErr.Code, dto.Fail(msg))
		return
	}

	status := http.StatusInternalServerError
	message := "Some error occurred"

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
		message = apperr.MessageOf(err)
	case apperr.KindValidation:
		status = http.StatusBadRequest
		message = apperr.MessageOf(err)
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
		message = apperr.MessageOf(err)
	case apperr.KindForbidden:
		status = http.StatusForbidden
		message = apperr.MessageOf(err)
	case apperr.KindConflict:
		status = http.StatusConflict
		message = apperr.MessageOf(err)
	case apperr.KindUpstream:
		status = http.StatusBadGateway
		message = apperr.MessageOf(err)
	}

	s.logger.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)

	_ = c.JSON(status, dto.Fail(message))
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
