package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"mealsub/internal/application/subscription/usecases"
	"mealsub/internal/domain/shared/events"
	"mealsub/internal/infrastructure/auth"
	"mealsub/internal/infrastructure/cache"
	"mealsub/internal/infrastructure/config"
	"mealsub/internal/infrastructure/permission"
	"mealsub/internal/interfaces/http/middleware"
	"mealsub/internal/shared/logger"
)

const eventBufferSize = 256

// Container holds infrastructure components, repositories, use cases and
// handlers. It wires everything together and owns the resources released
// by Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware

	jwtSvc     *auth.JWTService
	enforcer   *permission.Enforcer
	locker     usecases.MutationLocker
	sanitizer  *bluemonday.Policy
	dispatcher *events.InMemoryEventDispatcher
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, locks, RBAC, events
	if err := c.initInfrastructure(ctx); err != nil {
		c.closeResources()
		return nil, err
	}

	// Section 2: Subscription - repositories, use cases, handlers
	c.initSubscription()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	if c.cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, &c.cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.redis = client
		c.locker = cache.NewRedisMutationLocker(client, c.cfg.Redis.LockTTL())
		c.log.Infow("redis mutation lock enabled", "addr", c.cfg.Redis.GetAddr(), "ttl", c.cfg.Redis.LockTTL())
	} else {
		c.locker = cache.NewLocalMutationLocker()
		c.log.Warnw("redis disabled, mutation lock is process local")
	}

	enforcer, err := permission.NewEnforcer(c.db, c.cfg.Auth.CasbinModelPath, c.log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.EnsurePolicies(permission.DefaultPolicies()); err != nil {
		return fmt.Errorf("failed to seed permission policies: %w", err)
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, 0)
	c.sanitizer = bluemonday.StrictPolicy()

	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, c.log)
	eventLog := newSubscriptionEventLogger(c.log)
	for _, eventType := range eventLog.eventTypes() {
		if err := c.dispatcher.Subscribe(eventType, eventLog); err != nil {
			return fmt.Errorf("failed to subscribe %s handler: %w", eventType, err)
		}
	}
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	return nil
}

func (c *Container) initSubscription() {
	c.repos = newRepositories(c.db, c.log)
	c.ucs = newUseCases(c.repos, c.locker, c.sanitizer, c.dispatcher, c.cfg.Subscription.DefaultTotalDays, c.log)
	c.hdlrs = newHandlers(c.ucs, c.db, c.log)
}

// Shutdown stops the event dispatcher and closes the Redis client.
func (c *Container) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.closeResources()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Container) closeResources() {
	if c.dispatcher != nil {
		if err := c.dispatcher.Stop(); err != nil {
			c.log.Warnw("failed to stop event dispatcher", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
