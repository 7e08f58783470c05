package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// EventContact is the optional contact block on a calendar event.
type EventContact struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Event is a calendar entry owned by one account.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Type        string             `bson:"type" json:"type"` // call, meeting, demo, follow-up, task
	Date        string             `bson:"date" json:"date"`
	Time        string             `bson:"time" json:"time"`
	Duration    int                `bson:"duration" json:"duration"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Contact     *EventContact      `bson:"contact,omitempty" json:"contact,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Status      string             `bson:"status" json:"status"` // scheduled, completed, cancelled
	Priority    string             `bson:"priority" json:"priority"`
	UserID      string             `bson:"user_id" json:"userId"`
	CreatedAt   string             `bson:"created_at" json:"createdAt"`
	UpdatedAt   string             `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Duration    int           `json:"duration"`
	Description string        `json:"description"`
	Contact     *EventContact `json:"contact"`
	Location    string        `json:"location"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
}
