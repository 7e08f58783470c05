package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Target periods are a closed set.
const (
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

func ValidPeriod(p string) bool {
	return p == PeriodMonthly || p == PeriodQuarterly || p == PeriodYearly
}

// Target holds one salesperson's targets plus the derived achieved fields.
// SalesAchieved and InvoiceAchieved are recomputed from the account's
// assigned leads on every trigger; they are never settable directly.
type Target struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user_id"`
	SalesTarget     float64            `bson:"sales_target"`
	InvoiceTarget   float64            `bson:"invoice_target"`
	SalesAchieved   float64            `bson:"sales_achieved"`
	InvoiceAchieved float64            `bson:"invoice_achieved"`
	Period          string             `bson:"period"`
	CreatedAt       string             `bson:"created_at"`
	UpdatedAt       string             `bson:"updated_at"`
}

// TargetResponse is the camelCase wire shape.
type TargetResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	SalesTarget     float64 `json:"salesTarget"`
	InvoiceTarget   float64 `json:"invoiceTarget"`
	SalesAchieved   float64 `json:"salesAchieved"`
	InvoiceAchieved float64 `json:"invoiceAchieved"`
	Period          string  `json:"period"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func (t *Target) Response() *TargetResponse {
	return &TargetResponse{
		ID:              t.ID.Hex(),
		UserID:          t.UserID,
		SalesTarget:     t.SalesTarget,
		InvoiceTarget:   t.InvoiceTarget,
		SalesAchieved:   t.SalesAchieved,
		InvoiceAchieved: t.InvoiceAchieved,
		Period:          t.Period,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// UpsertTargetRequest represents the request body for setting targets.
// Achieved fields are intentionally absent.
type UpsertTargetRequest struct {
	UserID        string  `json:"userId"`
	SalesTarget   float64 `json:"salesTarget"`
	InvoiceTarget float64 `json:"invoiceTarget"`
	Period        string  `json:"period"`
}
