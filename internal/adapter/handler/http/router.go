package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/campusmart/marketplace/internal/adapter/config"
	"github.com/campusmart/marketplace/internal/adapter/metrics"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Router struct {
	*gin.Engine
	logger *zap.Logger
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	m *metrics.Metrics,
	orderHandler *OrderHandler,
	productHandler *ProductHandler,
	userHandler *UserHandler,
	adminHandler *AdminHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), observe(m), requestContext(conf.RequestTimeout))

	h := NewHandler(logger)

	router.GET("/healthz", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", userHandler.RegisterUser)
			auth.POST("/login", userHandler.LoginUser)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", h.authCheck(tokenService), productHandler.AddProduct)
		}

		orders := api.Group("/orders")
		{
			orders.Use(h.authCheck(tokenService))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByUser)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		admin := api.Group("/admin")
		{
			admin.Use(h.authCheck(tokenService), h.adminOnly())
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/users", adminHandler.ListUsers)
		}
	}

	return &Router{Engine: router, logger: logger}, nil
}

// Serve starts the HTTP server and shuts it down gracefully once ctx is done.
func (r *Router) Serve(ctx context.Context, listenAddr string) error {
	server := &http.Server{
		Addr:              listenAddr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server start", zap.String("addr", listenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return err
	}
	r.logger.Info("http server stopped")
	return nil
}
