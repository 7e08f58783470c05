package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead statuses are a closed set.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead is a sales prospect. Storage field names are snake_case; the wire
// shape is camelCase, so requests/responses carry their own structs instead
// of round-tripping this one.
type Lead struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	RepName       string             `bson:"company_representative_name"`
	CompanyName   string             `bson:"company_name"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone,omitempty"`
	Source        string             `bson:"source"`
	PricePaid     float64            `bson:"price_paid"`
	InvoiceBilled float64            `bson:"invoice_billed"`
	Status        string             `bson:"status"`
	AssignedTo    *string            `bson:"assigned_to"`
	Brand         string             `bson:"brand,omitempty"`
	Product       string             `bson:"product,omitempty"`
	Location      string             `bson:"location,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
	Update        string             `bson:"update"`
	CreatedAt     string             `bson:"created_at"`
	UpdatedAt     string             `bson:"updated_at,omitempty"`
	CreatedBy     string             `bson:"created_by,omitempty"`
}

// LeadResponse is the camelCase wire shape.
type LeadResponse struct {
	ID            string  `json:"id"`
	RepName       string  `json:"companyRepresentativeName"`
	CompanyName   string  `json:"companyName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Source        string  `json:"source"`
	PricePaid     float64 `json:"pricePaid"`
	InvoiceBilled float64 `json:"invoiceBilled"`
	Status        string  `json:"status"`
	AssignedTo    *string `json:"assignedTo"`
	Brand         string  `json:"brand,omitempty"`
	Product       string  `json:"product,omitempty"`
	Location      string  `json:"location,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Update        string  `json:"update"`
	CreatedAt     string  `json:"createdAt"`
}

func (l *Lead) Response() *LeadResponse {
	return &LeadResponse{
		ID:            l.ID.Hex(),
		RepName:       l.RepName,
		CompanyName:   l.CompanyName,
		Email:         l.Email,
		Phone:         l.Phone,
		Source:        l.Source,
		PricePaid:     l.PricePaid,
		InvoiceBilled: l.InvoiceBilled,
		Status:        l.Status,
		AssignedTo:    l.AssignedTo,
		Brand:         l.Brand,
		Product:       l.Product,
		Location:      l.Location,
		Notes:         l.Notes,
		Update:        l.Update,
		CreatedAt:     l.CreatedAt,
	}
}

// CreateLeadRequest represents the request body for creating a lead
type CreateLeadRequest struct {
	RepName       string  `json:"companyRepresentativeName"`
	CompanyName   string  `json:"companyName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Source        string  `json:"source"`
	PricePaid     float64 `json:"pricePaid"`
	InvoiceBilled float64 `json:"invoiceBilled"`
	Status        string  `json:"status"`
	AssignedTo    *string `json:"assignedTo"`
	Brand         string  `json:"brand"`
	Product       string  `json:"product"`
	Location      string  `json:"location"`
	Notes         string  `json:"notes"`
}

// UpdateLeadRequest represents the request body for updating a lead.
// Nil fields are left untouched; AssignedTo distinguishes "not sent"
// (field absent) from "unassign" (explicit null) via Set.
type UpdateLeadRequest struct {
	RepName       *string        `json:"companyRepresentativeName,omitempty"`
	CompanyName   *string        `json:"companyName,omitempty"`
	Email         *string        `json:"email,omitempty"`
	Phone         *string        `json:"phone,omitempty"`
	Source        *string        `json:"source,omitempty"`
	PricePaid     *float64       `json:"pricePaid,omitempty"`
	InvoiceBilled *float64       `json:"invoiceBilled,omitempty"`
	Status        *string        `json:"status,omitempty"`
	AssignedTo    OptionalString `json:"assignedTo,omitempty"`
	Brand         *string        `json:"brand,omitempty"`
	Product       *string        `json:"product,omitempty"`
	Location      *string        `json:"location,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

// OptionalString is a tri-state JSON field: absent, null, or a value.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// BulkDeleteRequest represents the request body for bulk lead deletion
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkAssignRequest represents the request body for bulk lead assignment
type BulkAssignRequest struct {
	IDs           []string `json:"ids"`
	SalesPersonID string   `json:"salesPersonId"`
}

// UpdateStamp is the short "last touched" marker carried on every lead write.
func UpdateStamp(t time.Time) string {
	return t.Format("Jan 02")
}
