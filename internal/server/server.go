// Package server exposes the application services over HTTP.
//
// The routing layer stays thin: handlers decode the request, pull the
// acting username out of the auth middleware's context, call a service,
// and map the service's error kind to a status code. No business rules
// live here.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snapledger/snapledger/internal/auth"
	"github.com/snapledger/snapledger/internal/middleware"
	"github.com/snapledger/snapledger/internal/service"
)

// Server holds the handler dependencies.
type Server struct {
	receipts      *service.ReceiptService
	items         *service.ExpenseItemService
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// New creates a Server with the given services.
func New(receipts *service.ReceiptService, items *service.ExpenseItemService, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *Server {
	return &Server{
		receipts:      receipts,
		items:         items,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Router builds the gin engine with all routes and middleware registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)
	}

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(s.jwtManager))
	{
		authed.POST("/receipts/upload", s.handleUploadReceipt)
		authed.GET("/receipts", s.handleListReceipts)
		authed.GET("/receipts/:id", s.handleGetReceipt)
		authed.DELETE("/receipts/:id", s.handleDeleteReceipt)
		authed.POST("/receipts/:id/items", s.handleCreateItem)
		authed.PUT("/items/:id", s.handleUpdateItem)
		authed.DELETE("/items/:id", s.handleDeleteItem)
	}

	return r
}

// writeServiceError maps a service error to its HTTP status. NotFound and
// Forbidden stay distinct on purpose.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": service.ErrNotFound.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": service.ErrForbidden.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrUpstream.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
