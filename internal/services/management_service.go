package services

import (
	"context"

	"crm-backend/internal/cache"
	"crm-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
)

// ManagementService is thin plumbing over the generic reference-data
// repository, plus cache invalidation on writes. The cache client may be
// nil; reads then always hit the repository.
type ManagementService struct {
	Repo  *repositories.ManagementRepository
	Cache *cache.Client
}

func NewManagementService(repo *repositories.ManagementRepository, cacheClient *cache.Client) *ManagementService {
	return &ManagementService{Repo: repo, Cache: cacheClient}
}

func (s *ManagementService) List(ctx context.Context, itemType string) ([]bson.M, error) {
	if data, ok := s.Cache.GetManagementList(ctx, itemType); ok {
		return data, nil
	}
	items, err := s.Repo.List(ctx, itemType)
	if err != nil {
		return nil, err
	}
	s.Cache.SetManagementList(ctx, itemType, items)
	return items, nil
}

func (s *ManagementService) Create(ctx context.Context, itemType string, doc bson.M, createdBy string) (bson.M, error) {
	item, err := s.Repo.Insert(ctx, itemType, doc, createdBy)
	if err != nil {
		return nil, err
	}
	s.Cache.InvalidateManagementList(ctx, itemType)
	return item, nil
}

func (s *ManagementService) Update(ctx context.Context, itemType, id string, doc bson.M, updatedBy string) (bson.M, error) {
	item, err := s.Repo.Update(ctx, itemType, id, doc, updatedBy)
	if err != nil {
		return nil, err
	}
	s.Cache.InvalidateManagementList(ctx, itemType)
	return item, nil
}

func (s *ManagementService) Delete(ctx context.Context, itemType, id string) error {
	if err := s.Repo.Delete(ctx, itemType, id); err != nil {
		return err
	}
	s.Cache.InvalidateManagementList(ctx, itemType)
	return nil
}
