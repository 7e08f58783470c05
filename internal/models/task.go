package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task is a tracked to-do item, optionally linked to a lead.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	DueDate     string             `bson:"due_date" json:"dueDate"`
	Priority    string             `bson:"priority" json:"priority"` // low, medium, high
	Status      string             `bson:"status" json:"status"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	AssignedTo  string             `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	RelatedLead string             `bson:"related_lead,omitempty" json:"relatedLead,omitempty"`
	UserID      string             `bson:"user_id" json:"userId"`
	CreatedAt   string             `bson:"created_at" json:"createdAt"`
	UpdatedAt   string             `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	AssignedTo  string `json:"assignedTo"`
	RelatedLead string `json:"relatedLead"`
}
