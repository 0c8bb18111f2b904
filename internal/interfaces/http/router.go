package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mealsub/internal/infrastructure/config"
	"mealsub/internal/shared/logger"

	_ "mealsub/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	engine    *gin.Engine
	container *Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	container, err := NewContainer(ctx, db, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Router{
		engine:    container.engine,
		container: container,
	}, nil
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown releases resources held by the router's container.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.container.Shutdown(ctx)
}
