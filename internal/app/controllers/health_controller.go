package controllers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/database"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
)

// HealthCheckController answers liveness probes
type HealthCheckController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthCheckController creates a health controller
func NewHealthCheckController(ctx *gin.Context, container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc returns a gin handler for health requests
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthCheckController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. Ping answers pong without touching dependencies
func (h *HealthCheckController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// 2. Status pings the database, the document store and, when enabled, Redis,
// and reports the connection pool statistics
func (h *HealthCheckController) Status() {
	ctx, cancel := context.WithTimeout(h.Ctx.Request.Context(), 3*time.Second)
	defer cancel()

	pool := h.Container.GetService("pool").(*database.ConnectionPool)
	if err := pool.HealthCheck(ctx); err != nil {
		response.FailWithMessage(h.Ctx, code.ErrDatabase, err.Error(), gin.H{"database": "down"})
		return
	}
	stats, err := pool.Stats()
	if err != nil {
		response.FailWithMessage(h.Ctx, code.ErrDatabase, err.Error(), gin.H{"database": "down"})
		return
	}

	store := h.Container.GetService("store").(docstore.Store)
	if err := store.Ping(ctx); err != nil {
		response.FailWithMessage(h.Ctx, code.ErrDatabase, err.Error(), gin.H{"store": "down"})
		return
	}

	status := gin.H{"status": "healthy", "database": "up", "pool": stats, "store": "up", "redis": "disabled"}
	if redis, ok := h.Container.GetService("redis").(services.InterfaceRedisService); ok && redis != nil {
		if err := redis.Ping(ctx); err != nil {
			status["redis"] = "down"
		} else {
			status["redis"] = "up"
		}
	}
	response.Success(h.Ctx, status)
}
