package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/repositories"
	"crm-backend/internal/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// leadFixtureStore backs both the lead service and the achievement refresh,
// so a handler test observes the sums over the store's state after the
// mutation committed.
type leadFixtureStore struct {
	leads map[string]*models.Lead
}

func newLeadFixtureStore() *leadFixtureStore {
	return &leadFixtureStore{leads: make(map[string]*models.Lead)}
}

func (f *leadFixtureStore) Create(ctx context.Context, l *models.Lead) error {
	l.ID = primitive.NewObjectID()
	f.leads[l.ID.Hex()] = l
	return nil
}

func (f *leadFixtureStore) GetByID(ctx context.Context, id string) (*models.Lead, error) {
	l, ok := f.leads[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *leadFixtureStore) List(ctx context.Context, assignedTo string) ([]*models.Lead, error) {
	var out []*models.Lead
	for _, l := range f.leads {
		if assignedTo == "" || (l.AssignedTo != nil && *l.AssignedTo == assignedTo) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *leadFixtureStore) Update(ctx context.Context, id string, fields bson.M) error {
	l, ok := f.leads[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			l.Status = v.(string)
		case "price_paid":
			l.PricePaid = v.(float64)
		case "invoice_billed":
			l.InvoiceBilled = v.(float64)
		case "assigned_to":
			l.AssignedTo = v.(*string)
		case "updated_at":
			l.UpdatedAt = v.(string)
		case "update":
			l.Update = v.(string)
		}
	}
	return nil
}

func (f *leadFixtureStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.leads[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.leads, id)
	return nil
}

func (f *leadFixtureStore) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.leads[id]; ok {
			delete(f.leads, id)
			n++
		}
	}
	return n, nil
}

func (f *leadFixtureStore) AssignMany(ctx context.Context, ids []string, salesPersonID string) (int64, error) {
	var n int64
	for _, id := range ids {
		if l, ok := f.leads[id]; ok {
			assignee := salesPersonID
			l.AssignedTo = &assignee
			n++
		}
	}
	return n, nil
}

func (f *leadFixtureStore) FindByIDs(ctx context.Context, ids []string) ([]*models.Lead, error) {
	var out []*models.Lead
	for _, id := range ids {
		if l, ok := f.leads[id]; ok {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *leadFixtureStore) SumByAssignee(ctx context.Context, userID string) (float64, float64, error) {
	var price, billed float64
	for _, l := range f.leads {
		if l.AssignedTo != nil && *l.AssignedTo == userID {
			price += l.PricePaid
			billed += l.InvoiceBilled
		}
	}
	return price, billed, nil
}

type achievedRecorder struct {
	written map[string][2]float64
}

func (r *achievedRecorder) UpdateAchieved(ctx context.Context, userID string, sales, invoice float64) (int64, error) {
	if r.written == nil {
		r.written = make(map[string][2]float64)
	}
	r.written[userID] = [2]float64{sales, invoice}
	return 1, nil
}

func newLeadFixture() (*LeadHandler, *leadFixtureStore, *achievedRecorder) {
	store := newLeadFixtureStore()
	recorder := &achievedRecorder{}
	handler := NewLeadHandler(
		services.NewLeadService(store),
		services.NewAchievementService(store, recorder),
	)
	return handler, store, recorder
}

func seedAssignedLead(store *leadFixtureStore, assignee string, price, billed float64) *models.Lead {
	l := &models.Lead{
		ID:            primitive.NewObjectID(),
		RepName:       "Rep",
		CompanyName:   "Acme",
		Email:         "rep@acme.com",
		Status:        models.LeadStatusNew,
		AssignedTo:    &assignee,
		PricePaid:     price,
		InvoiceBilled: billed,
	}
	store.leads[l.ID.Hex()] = l
	return l
}

func adminRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	admin := &models.Account{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	return req.WithContext(context.WithValue(req.Context(), middleware.AccountKey, admin))
}

func TestUpdateLead_RefreshesAchievedSums(t *testing.T) {
	t.Parallel()

	handler, store, recorder := newLeadFixture()
	lead := seedAssignedLead(store, "u1", 500, 300)
	seedAssignedLead(store, "u1", 100, 50)

	newPrice := 900.0
	req := adminRequest(http.MethodPut, "/leads/"+lead.ID.Hex(), map[string]any{"pricePaid": newPrice})
	req = mux.SetURLVars(req, map[string]string{"id": lead.ID.Hex()})

	rr := httptest.NewRecorder()
	handler.UpdateLead(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	// The refresh ran over the committed state: 900 + 100 paid, 300 + 50 billed.
	if got := recorder.written["u1"]; got != [2]float64{1000, 350} {
		t.Fatalf("achieved for u1 = %v, want [1000 350]", got)
	}
}

func TestUpdateLead_ReassignRefreshesBothAccounts(t *testing.T) {
	t.Parallel()

	handler, store, recorder := newLeadFixture()
	lead := seedAssignedLead(store, "u1", 400, 200)
	seedAssignedLead(store, "u2", 50, 25)

	req := adminRequest(http.MethodPut, "/leads/"+lead.ID.Hex(), map[string]any{"assignedTo": "u2"})
	req = mux.SetURLVars(req, map[string]string{"id": lead.ID.Hex()})

	rr := httptest.NewRecorder()
	handler.UpdateLead(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	got, ok := recorder.written["u1"]
	if !ok {
		t.Fatal("prior assignee was not refreshed")
	}
	if got != [2]float64{0, 0} {
		t.Fatalf("achieved for prior assignee = %v, want [0 0]", got)
	}
	if got := recorder.written["u2"]; got != [2]float64{450, 225} {
		t.Fatalf("achieved for new assignee = %v, want [450 225]", got)
	}
}

func TestUpdateLead_NonFinancialChangeSkipsRefresh(t *testing.T) {
	t.Parallel()

	handler, store, recorder := newLeadFixture()
	lead := seedAssignedLead(store, "u1", 400, 200)

	req := adminRequest(http.MethodPut, "/leads/"+lead.ID.Hex(), map[string]any{"notes": "called twice"})
	req = mux.SetURLVars(req, map[string]string{"id": lead.ID.Hex()})

	rr := httptest.NewRecorder()
	handler.UpdateLead(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	if len(recorder.written) != 0 {
		t.Fatalf("refresh ran for %v after a non-financial change", recorder.written)
	}
}

func TestDeleteLead_RefreshesPriorAssignee(t *testing.T) {
	t.Parallel()

	handler, store, recorder := newLeadFixture()
	lead := seedAssignedLead(store, "u1", 400, 200)

	req := adminRequest(http.MethodDelete, "/leads/"+lead.ID.Hex(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": lead.ID.Hex()})

	rr := httptest.NewRecorder()
	handler.DeleteLead(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	got, ok := recorder.written["u1"]
	if !ok {
		t.Fatal("prior assignee was not refreshed after delete")
	}
	if got != [2]float64{0, 0} {
		t.Fatalf("achieved after delete = %v, want [0 0]", got)
	}
}

func TestBulkAssign_RefreshesEveryTouchedAccount(t *testing.T) {
	t.Parallel()

	handler, store, recorder := newLeadFixture()
	a := seedAssignedLead(store, "u1", 400, 200)
	b := seedAssignedLead(store, "u2", 100, 50)

	req := adminRequest(http.MethodPost, "/leads/bulk-assign", models.BulkAssignRequest{
		IDs:           []string{a.ID.Hex(), b.ID.Hex()},
		SalesPersonID: "u3",
	})

	rr := httptest.NewRecorder()
	handler.BulkAssign(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	for user, want := range map[string][2]float64{
		"u1": {0, 0},
		"u2": {0, 0},
		"u3": {500, 250},
	} {
		got, ok := recorder.written[user]
		if !ok {
			t.Fatalf("account %s was not refreshed", user)
		}
		if got != want {
			t.Fatalf("achieved for %s = %v, want %v", user, got, want)
		}
	}
}
