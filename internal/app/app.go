package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopward/commerce-api/internal/auth"
	"github.com/shopward/commerce-api/internal/config"
	"github.com/shopward/commerce-api/internal/handler"
	"github.com/shopward/commerce-api/internal/oauth"
	"github.com/shopward/commerce-api/internal/repository"
	"github.com/shopward/commerce-api/internal/service"
	"github.com/shopward/commerce-api/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	tokenManager := auth.NewTokenManager(
		cfg.Tokens.AccessSecret,
		cfg.Tokens.RefreshSecret,
		cfg.Tokens.AccessTokenExpiry.Duration,
		cfg.Tokens.RefreshTokenExpiry.Duration,
	)

	secureCookies := cfg.Env != "development"
	cookieManager := auth.NewCookieManager(
		cfg.Tokens.CookieSecret,
		secureCookies,
		cfg.Tokens.AccessTokenExpiry.Duration,
		cfg.Tokens.RefreshTokenExpiry.Duration,
	)

	rateLimiter := service.NewRateLimiter(infra.Redis())
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		repos.Token,
		tokenManager,
		infra.Logger(),
		cfg.Security.BCryptCost,
	)
	userService := service.NewUserService(repos.User)
	catalogService := service.NewCatalogService(repos.Product, repos.Category)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	orderService := service.NewOrderService(repos.Order, repos.Cart)
	addressService := service.NewAddressService(repos.Address)

	handlers := &handlers{
		auth:     handler.NewAuthHandler(authService, cookieManager),
		user:     handler.NewUserHandler(userService, cookieManager),
		oauth:    newOAuthHandler(cfg, authService, cookieManager, secureCookies, infra.Logger()),
		product:  handler.NewProductHandler(catalogService),
		category: handler.NewCategoryHandler(catalogService),
		cart:     handler.NewCartHandler(cartService),
		order:    handler.NewOrderHandler(orderService),
		address:  handler.NewAddressHandler(addressService),
	}

	router := gin.Default()
	router.Use(otelgin.Middleware("commerce-api"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	session := handler.SessionMiddleware(cookieManager, tokenManager)

	setupRoutes(router, cfg, handlers, session, rateLimiter, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

type handlers struct {
	auth     *handler.AuthHandler
	user     *handler.UserHandler
	oauth    *handler.OAuthHandler
	product  *handler.ProductHandler
	category *handler.CategoryHandler
	cart     *handler.CartHandler
	order    *handler.OrderHandler
	address  *handler.AddressHandler
}

// newOAuthHandler builds the OAuth handler from whichever providers have
// credentials configured. With none configured the routes still exist and
// answer 404 for any provider name.
func newOAuthHandler(
	cfg *config.Config,
	authService service.AuthService,
	cookies *auth.CookieManager,
	secure bool,
	logger *zap.Logger,
) *handler.OAuthHandler {
	var providers []oauth.Provider

	if cfg.OAuth.Google.Enabled() {
		providers = append(providers, oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			CallbackURL:  cfg.OAuth.Google.CallbackURL,
		}))
	}
	if cfg.OAuth.Facebook.Enabled() {
		providers = append(providers, oauth.NewFacebookProvider(oauth.FacebookConfig{
			ClientID:     cfg.OAuth.Facebook.ClientID,
			ClientSecret: cfg.OAuth.Facebook.ClientSecret,
			CallbackURL:  cfg.OAuth.Facebook.CallbackURL,
		}))
	}

	return handler.NewOAuthHandler(
		authService,
		cookies,
		providers,
		cfg.OAuth.SuccessRedirect,
		cfg.OAuth.FailureRedirect,
		secure,
		logger,
	)
}

func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	h *handlers,
	session gin.HandlerFunc,
	rateLimiter *service.RateLimiter,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	limited := handler.RateLimitMiddleware(
		rateLimiter,
		cfg.Security.RateLimitRequests,
		cfg.Security.RateLimitWindow.Duration,
		handler.IPBasedKey,
	)

	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "welcome to the commerce api"})
	})

	users := router.Group("/users")
	{
		users.POST("/register", limited, h.auth.Register)
		users.POST("/login", limited, h.auth.Login)
		users.DELETE("/logout", session, h.auth.Logout)
		users.GET("/me", session, h.user.Me)
		users.PUT("/me", session, h.user.Update)
		users.DELETE("/me", session, h.user.Delete)
	}

	router.POST("/token", h.auth.Refresh)

	oauthGroup := router.Group("/oauth")
	{
		oauthGroup.GET("/:provider", h.oauth.Begin)
		oauthGroup.GET("/:provider/callback", h.oauth.Callback)
	}

	products := router.Group("/products")
	{
		products.GET("", h.product.List)
		products.GET("/:id", h.product.Get)
		products.POST("", session, h.product.Create)
		products.PUT("/:id", session, h.product.Update)
		products.DELETE("/:id", session, h.product.Delete)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", h.category.List)
		categories.GET("/:id", h.category.Get)
		categories.POST("", session, h.category.Create)
		categories.PUT("/:id", session, h.category.Update)
		categories.DELETE("/:id", session, h.category.Delete)
	}

	cart := router.Group("/cart", session)
	{
		cart.GET("", h.cart.List)
		cart.POST("/items", h.cart.AddItem)
		cart.PUT("/items/:productId", h.cart.UpdateItem)
		cart.DELETE("/items/:productId", h.cart.RemoveItem)
		cart.DELETE("", h.cart.Clear)
	}

	orders := router.Group("/orders", session)
	{
		orders.POST("", h.order.Create)
		orders.GET("", h.order.List)
		orders.GET("/:id", h.order.Get)
		orders.PUT("/:id/status", h.order.UpdateStatus)
		orders.DELETE("/:id", h.order.Cancel)
	}

	addresses := router.Group("/addresses", session)
	{
		addresses.GET("", h.address.List)
		addresses.GET("/:id", h.address.Get)
		addresses.POST("", h.address.Create)
		addresses.PUT("/:id", h.address.Update)
		addresses.DELETE("/:id", h.address.Delete)
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
