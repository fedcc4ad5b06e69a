package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/error/code"
	"github.com/Urbanbaseprops/property-manager/internal/error/response"
)

// TaskController handles to-do items
type TaskController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTaskController creates a task controller
func NewTaskController(ctx *gin.Context, container *container.ServiceContainer) *TaskController {
	return &TaskController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleTaskFunc returns a gin handler for task requests
func HandleTaskFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTaskController(ctx, container)

		switch method {
		case "getTasks":
			controller.GetTasks()
		case "createTask":
			controller.CreateTask()
		case "updateTask":
			controller.UpdateTask()
		case "toggleTask":
			controller.ToggleTask()
		case "deleteTask":
			controller.DeleteTask()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *TaskController) service() services.InterfaceTaskService {
	return c.Container.GetService("task").(services.InterfaceTaskService)
}

// 1. GetTasks lists tasks; with ?date only undated tasks and those on that day
func (c *TaskController) GetTasks() {
	var day *time.Time
	if c.Ctx.Query("date") != "" {
		ref, ok := referenceDate(c.Ctx)
		if !ok {
			return
		}
		day = &ref
	}

	tasks, err := c.service().ListTasks(c.Ctx.Request.Context(), day)
	if err != nil {
		respondError(c.Ctx, err, code.ErrTaskNotFound)
		return
	}
	response.Success(c.Ctx, tasks)
}

// 2. CreateTask stores an open task
func (c *TaskController) CreateTask() {
	var task models.Task
	if err := c.Ctx.ShouldBindJSON(&task); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}
	task.ID = ""

	created, err := c.service().CreateTask(c.Ctx.Request.Context(), task, time.Now())
	if err != nil {
		respondError(c.Ctx, err, code.ErrTaskNotFound)
		return
	}
	response.Success(c.Ctx, created)
}

// 3. UpdateTask edits text, assignee and date
func (c *TaskController) UpdateTask() {
	var update services.TaskUpdate
	if err := c.Ctx.ShouldBindJSON(&update); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return
	}

	task, err := c.service().UpdateTask(c.Ctx.Request.Context(), c.Ctx.Param("id"), update)
	if err != nil {
		respondError(c.Ctx, err, code.ErrTaskNotFound)
		return
	}
	response.Success(c.Ctx, task)
}

// 4. ToggleTask flips completed
func (c *TaskController) ToggleTask() {
	task, err := c.service().ToggleTask(c.Ctx.Request.Context(), c.Ctx.Param("id"))
	if err != nil {
		respondError(c.Ctx, err, code.ErrTaskNotFound)
		return
	}
	response.Success(c.Ctx, task)
}

// 5. DeleteTask removes a task
func (c *TaskController) DeleteTask() {
	if err := c.service().DeleteTask(c.Ctx.Request.Context(), c.Ctx.Param("id")); err != nil {
		respondError(c.Ctx, err, code.ErrTaskNotFound)
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": true})
}
