package services

import (
	"context"
	"errors"

	"crm-backend/internal/models"
	"crm-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
)

type EventService struct {
	Repo *repositories.EventRepository
}

func NewEventService(repo *repositories.EventRepository) *EventService {
	return &EventService{Repo: repo}
}

// List returns the caller's own events; admins see everyone's.
func (s *EventService) List(ctx context.Context, caller *models.Account) ([]*models.Event, error) {
	if caller.Role == models.RoleAdmin {
		return s.Repo.List(ctx, "")
	}
	return s.Repo.List(ctx, caller.ID.Hex())
}

func (s *EventService) Create(ctx context.Context, caller *models.Account, req *models.CreateEventRequest) (*models.Event, error) {
	if req.Title == "" || req.Date == "" {
		return nil, errors.New("title and date are required")
	}

	event := &models.Event{
		Title:       req.Title,
		Type:        req.Type,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Description: req.Description,
		Contact:     req.Contact,
		Location:    req.Location,
		Status:      req.Status,
		Priority:    req.Priority,
		UserID:      caller.ID.Hex(),
	}
	if event.Status == "" {
		event.Status = "scheduled"
	}
	if err := s.Repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, caller *models.Account, id string, fields bson.M) (*models.Event, error) {
	event, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role != models.RoleAdmin && event.UserID != caller.ID.Hex() {
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

func (s *EventService) Delete(ctx context.Context, caller *models.Account, id string) error {
	event, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if caller.Role != models.RoleAdmin && event.UserID != caller.ID.Hex() {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, id)
}
