package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
)

// DashboardController handles dashboard and reminder screens
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController creates a dashboard controller
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc returns a gin handler for dashboard requests
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		case "getDue":
			controller.GetDue()
		case "getReminders":
			controller.GetReminders()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// 1. GetDashboard builds the dashboard of the signed-in user for ?date (default today)
// @Summary  Dashboard
// @Tags     Dashboard
// @Produce  json
// @Security BearerAuth
// @Param    date query string false "YYYY-MM-DD"
// @Success  200 {object} services.Dashboard
// @Router   /dashboard [get]
func (c *DashboardController) GetDashboard() {
	ref, ok := referenceDate(c.Ctx)
	if !ok {
		return
	}

	svc := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	dashboard, err := svc.GetDashboard(c.Ctx.Request.Context(), currentUser(c.Ctx), ref)
	if err != nil {
		respondError(c.Ctx, err, code.ErrRecordNotFound)
		return
	}
	response.Success(c.Ctx, dashboard)
}

// 2. GetDue returns the schedule ?offset days after ?date
func (c *DashboardController) GetDue() {
	ref, ok := referenceDate(c.Ctx)
	if !ok {
		return
	}
	offset, ok := queryInt(c.Ctx, "offset", 0)
	if !ok {
		return
	}

	svc := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	schedule, err := svc.DueOn(c.Ctx.Request.Context(), ref, offset)
	if err != nil {
		respondError(c.Ctx, err, code.ErrRecordNotFound)
		return
	}
	response.Success(c.Ctx, schedule)
}

// 3. GetReminders lists rent reminders with contract status against ?date
func (c *DashboardController) GetReminders() {
	ref, ok := referenceDate(c.Ctx)
	if !ok {
		return
	}

	svc := c.Container.GetService("reminder").(services.InterfaceReminderService)
	reminders, err := svc.ListReminders(c.Ctx.Request.Context(), ref)
	if err != nil {
		respondError(c.Ctx, err, code.ErrRecordNotFound)
		return
	}
	response.Success(c.Ctx, reminders)
}
