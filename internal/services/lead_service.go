package services

import (
	"context"
	"time"

	"crm-backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

// LeadStore is the slice of the lead repository this service needs.
type LeadStore interface {
	Create(ctx context.Context, l *models.Lead) error
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	List(ctx context.Context, assignedTo string) ([]*models.Lead, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	AssignMany(ctx context.Context, ids []string, salesPersonID string) (int64, error)
	FindByIDs(ctx context.Context, ids []string) ([]*models.Lead, error)
}

// LeadService applies role-based visibility and reports which accounts need
// an achievement refresh after each mutation. The refresh itself is a
// separate, non-atomic step the caller runs via AchievementService; a crash
// between the two leaves the aggregate stale until the next trigger.
type LeadService struct {
	Repo LeadStore

	now func() time.Time
}

func NewLeadService(repo LeadStore) *LeadService {
	return &LeadService{Repo: repo, now: time.Now}
}

// visible reports whether the caller may touch the lead. Admins are
// unrestricted; salespeople only reach leads assigned to themselves.
func visible(caller *models.Account, lead *models.Lead) bool {
	if caller.Role == models.RoleAdmin {
		return true
	}
	return lead.AssignedTo != nil && *lead.AssignedTo == caller.ID.Hex()
}

// List returns the leads the caller may see.
func (s *LeadService) List(ctx context.Context, caller *models.Account) ([]*models.Lead, error) {
	if caller.Role == models.RoleAdmin {
		return s.Repo.List(ctx, "")
	}
	return s.Repo.List(ctx, caller.ID.Hex())
}

// Create stores a new lead. The returned slice names the accounts whose
// achievements must be recalculated (the assignee, when set).
func (s *LeadService) Create(ctx context.Context, caller *models.Account, req *models.CreateLeadRequest) (*models.Lead, []string, error) {
	lead := &models.Lead{
		RepName:       req.RepName,
		CompanyName:   req.CompanyName,
		Email:         req.Email,
		Phone:         req.Phone,
		Source:        req.Source,
		PricePaid:     req.PricePaid,
		InvoiceBilled: req.InvoiceBilled,
		Status:        req.Status,
		AssignedTo:    req.AssignedTo,
		Brand:         req.Brand,
		Product:       req.Product,
		Location:      req.Location,
		Notes:         req.Notes,
		CreatedBy:     caller.ID.Hex(),
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if !models.ValidLeadStatus(lead.Status) {
		return nil, nil, ErrInvalidLeadStatus
	}
	if lead.PricePaid < 0 || lead.InvoiceBilled < 0 {
		return nil, nil, ErrNegativeAmount
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		return nil, nil, err
	}

	var affected []string
	if lead.AssignedTo != nil {
		affected = append(affected, *lead.AssignedTo)
	}
	return lead, affected, nil
}

// Get returns one lead if the caller may see it.
func (s *LeadService) Get(ctx context.Context, caller *models.Account, id string) (*models.Lead, error) {
	lead, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(caller, lead) {
		return nil, ErrForbidden
	}
	return lead, nil
}

// Update applies the set fields to one lead. The ownership check runs before
// any write. The returned slice names the accounts whose achievements must
// be recalculated: the prior and the new assignee when the assignment or a
// financial field changed.
func (s *LeadService) Update(ctx context.Context, caller *models.Account, id string, req *models.UpdateLeadRequest) (*models.Lead, []string, error) {
	lead, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !visible(caller, lead) {
		return nil, nil, ErrForbidden
	}

	fields := bson.M{}
	setStr := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setStr("company_representative_name", req.RepName)
	setStr("company_name", req.CompanyName)
	setStr("email", req.Email)
	setStr("phone", req.Phone)
	setStr("source", req.Source)
	setStr("brand", req.Brand)
	setStr("product", req.Product)
	setStr("location", req.Location)
	setStr("notes", req.Notes)

	if req.Status != nil {
		if !models.ValidLeadStatus(*req.Status) {
			return nil, nil, ErrInvalidLeadStatus
		}
		fields["status"] = *req.Status
	}

	financialChanged := false
	if req.PricePaid != nil {
		if *req.PricePaid < 0 {
			return nil, nil, ErrNegativeAmount
		}
		fields["price_paid"] = *req.PricePaid
		financialChanged = true
	}
	if req.InvoiceBilled != nil {
		if *req.InvoiceBilled < 0 {
			return nil, nil, ErrNegativeAmount
		}
		fields["invoice_billed"] = *req.InvoiceBilled
		financialChanged = true
	}

	oldAssignee := lead.AssignedTo
	assignChanged := false
	if req.AssignedTo.Set {
		fields["assigned_to"] = req.AssignedTo.Value
		if !equalAssignee(oldAssignee, req.AssignedTo.Value) {
			assignChanged = true
		}
	}

	if len(fields) > 0 {
		now := s.now()
		fields["updated_at"] = models.TimestampNow(now)
		fields["update"] = models.UpdateStamp(now)
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			return nil, nil, err
		}
	}

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	var affected []string
	if assignChanged || financialChanged {
		if oldAssignee != nil {
			affected = append(affected, *oldAssignee)
		}
		if updated.AssignedTo != nil {
			affected = append(affected, *updated.AssignedTo)
		}
	}
	return updated, affected, nil
}

// Delete removes one lead after the ownership check. The returned slice
// names the prior assignee, if any.
func (s *LeadService) Delete(ctx context.Context, caller *models.Account, id string) ([]string, error) {
	lead, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(caller, lead) {
		return nil, ErrForbidden
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	var affected []string
	if lead.AssignedTo != nil {
		affected = append(affected, *lead.AssignedTo)
	}
	return affected, nil
}

// BulkDelete removes a set of leads and returns the deleted count plus every
// distinct assignee touched. A salesperson deleting any lead not assigned to
// themselves is rejected before anything is removed.
func (s *LeadService) BulkDelete(ctx context.Context, caller *models.Account, ids []string) (int64, []string, error) {
	leads, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return 0, nil, err
	}

	var affected []string
	for _, lead := range leads {
		if !visible(caller, lead) {
			return 0, nil, ErrForbidden
		}
		if lead.AssignedTo != nil {
			affected = append(affected, *lead.AssignedTo)
		}
	}

	count, err := s.Repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, nil, err
	}
	return count, affected, nil
}

// BulkAssign hands a set of leads to one salesperson and returns the
// modified count plus every distinct prior assignee and the new one.
func (s *LeadService) BulkAssign(ctx context.Context, req *models.BulkAssignRequest) (int64, []string, error) {
	leads, err := s.Repo.FindByIDs(ctx, req.IDs)
	if err != nil {
		return 0, nil, err
	}

	var affected []string
	for _, lead := range leads {
		if lead.AssignedTo != nil {
			affected = append(affected, *lead.AssignedTo)
		}
	}
	affected = append(affected, req.SalesPersonID)

	count, err := s.Repo.AssignMany(ctx, req.IDs, req.SalesPersonID)
	if err != nil {
		return 0, nil, err
	}
	return count, affected, nil
}

func equalAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
