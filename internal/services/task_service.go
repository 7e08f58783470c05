package services

import (
	"context"
	"errors"

	"crm-backend/internal/models"
	"crm-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
)

type TaskService struct {
	Repo *repositories.TaskRepository
}

func NewTaskService(repo *repositories.TaskRepository) *TaskService {
	return &TaskService{Repo: repo}
}

// List returns the caller's own tasks; admins see everyone's.
func (s *TaskService) List(ctx context.Context, caller *models.Account) ([]*models.Task, error) {
	if caller.Role == models.RoleAdmin {
		return s.Repo.List(ctx, "")
	}
	return s.Repo.List(ctx, caller.ID.Hex())
}

func (s *TaskService) Create(ctx context.Context, caller *models.Account, req *models.CreateTaskRequest) (*models.Task, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
		Category:    req.Category,
		AssignedTo:  req.AssignedTo,
		RelatedLead: req.RelatedLead,
		UserID:      caller.ID.Hex(),
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if err := s.Repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, caller *models.Account, id string, fields bson.M) (*models.Task, error) {
	task, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && task.UserID != caller.ID.Hex() {
		return nil, ErrForbidden
	}

	delete(fields, "id")
	delete(fields, "_id")
	delete(fields, "user_id")
	if err := s.Repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, caller *models.Account, id string) error {
	task, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if caller.Role != models.RoleAdmin && task.UserID != caller.ID.Hex() {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, id)
}
