package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"crm-backend/internal/auth"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
)

// AccountStore is the slice of the account repository this service needs.
type AccountStore interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	ListSalespeople(ctx context.Context) ([]*models.Account, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

// LeadUnassigner clears lead assignments when their owner is removed.
type LeadUnassigner interface {
	UnassignAll(ctx context.Context, userID string) (int64, error)
}

// TargetRemover drops a removed account's target record.
type TargetRemover interface {
	DeleteByUser(ctx context.Context, userID string) error
}

type AccountService struct {
	Repo    AccountStore
	Leads   LeadUnassigner
	Targets TargetRemover
}

func NewAccountService(repo AccountStore, leads LeadUnassigner, targets TargetRemover) *AccountService {
	return &AccountService{Repo: repo, Leads: leads, Targets: targets}
}

func (s *AccountService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.Account, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("name, email, and password are required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleSales
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusActive,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	return s.Repo.List(ctx)
}

func (s *AccountService) ListSalespeople(ctx context.Context) ([]*models.Account, error) {
	return s.Repo.ListSalespeople(ctx)
}

// Update applies the set fields to one account. Password changes are hashed
// here; role and status values are validated before the write.
func (s *AccountService) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.Account, error) {
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(*req.Email)
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = *req.PhoneNumber
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		fields["role"] = *req.Role
	}
	if req.Status != nil {
		if *req.Status != models.StatusActive && *req.Status != models.StatusDisabled {
			return nil, errors.New("invalid status")
		}
		fields["status"] = *req.Status
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}

	if len(fields) > 0 {
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetByID(ctx, id)
}

// Delete removes a salesperson account. Administrators are never deleted
// (disable them instead). Deleting a salesperson unassigns their leads and
// drops their target record, so no aggregate is left pointing at a ghost.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	account, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account.Role == models.RoleAdmin {
		return ErrAdminNotDeletable
	}

	if _, err := s.Leads.UnassignAll(ctx, id); err != nil {
		return err
	}
	if err := s.Targets.DeleteByUser(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// SeedDefaultAdmin provisions the first administrator account when the
// store is empty of it. Runs at startup, mirrors first-boot provisioning.
func (s *AccountService) SeedDefaultAdmin(ctx context.Context, email, password string) {
	_, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		return
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("[Seed] admin lookup failed: %v", err)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("[Seed] admin password hash failed: %v", err)
		return
	}

	admin := &models.Account{
		Name:         "Admin User",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		log.Printf("[Seed] admin create failed: %v", err)
		return
	}
	log.Printf("[Seed] Default admin user created: %s", email)
}
