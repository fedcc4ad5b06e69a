package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// InterfaceTaskService defines the task service interface
type InterfaceTaskService interface {
	ListTasks(ctx context.Context, day *time.Time) ([]models.Task, error)
	TasksFor(ctx context.Context, user models.Identity) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task, now time.Time) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, update TaskUpdate) (*models.Task, error)
	ToggleTask(ctx context.Context, id string) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TaskUpdate holds the editable fields of a task. Nil fields are left alone; an empty
// date clears it.
type TaskUpdate struct {
	Task       *string `json:"task"`
	AssignedTo *string `json:"assignedTo"`
	Date       *string `json:"date"`
}

// TaskService manages to-do items
type TaskService struct {
	Store    docstore.Store
	Validate *validator.Validate
}

// NewTaskService creates a task service
func NewTaskService(store docstore.Store, v *validator.Validate) InterfaceTaskService {
	return &TaskService{
		Store:    store,
		Validate: v,
	}
}

// 1 ListTasks returns all tasks, or when day is set the undated tasks and those on that day
func (s *TaskService) ListTasks(ctx context.Context, day *time.Time) ([]models.Task, error) {
	tasks, err := listDecoded[models.Task](ctx, s.Store, docstore.CollectionTasks)
	if err != nil || day == nil {
		return tasks, err
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.OnDay(*day) {
			out = append(out, t)
		}
	}
	return out, nil
}

// 2 TasksFor returns the tasks assigned to user
func (s *TaskService) TasksFor(ctx context.Context, user models.Identity) ([]models.Task, error) {
	return queryDecoded[models.Task](ctx, s.Store, docstore.CollectionTasks, "assignedTo", user.Label())
}

// 3 CreateTask stores an open task created at now
func (s *TaskService) CreateTask(ctx context.Context, t models.Task, now time.Time) (*models.Task, error) {
	t.Task = strings.TrimSpace(t.Task)
	t.AssignedTo = strings.TrimSpace(t.AssignedTo)
	if err := validateEntity(s.Validate, t); err != nil {
		Logger.Warning("task not created: %v", err)
		return nil, err
	}
	t.Completed = false
	t.CreatedAt = models.Date{Time: now}
	return insertEntity(ctx, s.Store, docstore.CollectionTasks, t)
}

// 4 UpdateTask edits text, assignee and date
func (s *TaskService) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*models.Task, error) {
	partial := map[string]interface{}{}
	var missing []string
	if update.Task != nil {
		if strings.TrimSpace(*update.Task) == "" {
			missing = append(missing, "task")
		}
		partial["task"] = strings.TrimSpace(*update.Task)
	}
	if update.AssignedTo != nil {
		if strings.TrimSpace(*update.AssignedTo) == "" {
			missing = append(missing, "assignedTo")
		}
		partial["assignedTo"] = strings.TrimSpace(*update.AssignedTo)
	}
	if len(missing) > 0 {
		Logger.Warning("task %s not updated: missing %v", id, missing)
		return nil, &ValidationSkippedError{Missing: missing}
	}
	if update.Date != nil {
		if strings.TrimSpace(*update.Date) == "" {
			partial["date"] = nil
		} else {
			d, err := models.ParseDate(*update.Date)
			if err != nil {
				return nil, invalid("date: %v", err)
			}
			partial["date"] = d.String()
		}
	}

	if len(partial) > 0 {
		if err := s.Store.UpdateFields(ctx, docstore.CollectionTasks, id, partial); err != nil {
			return nil, fmt.Errorf("update task: %w", err)
		}
	}
	return getDecoded[models.Task](ctx, s.Store, docstore.CollectionTasks, id)
}

// 5 ToggleTask flips completed
func (s *TaskService) ToggleTask(ctx context.Context, id string) (*models.Task, error) {
	t, err := getDecoded[models.Task](ctx, s.Store, docstore.CollectionTasks, id)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := s.Store.UpdateFields(ctx, docstore.CollectionTasks, id, map[string]interface{}{"completed": t.Completed}); err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return t, nil
}

// 6 DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, docstore.CollectionTasks, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
