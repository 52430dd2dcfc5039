package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	Title       string   `json:"title" validate:"required,min=5"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required"`
	Urgency     string   `json:"urgency" validate:"required,oneof=Low Medium High"`
	Location    string   `json:"location" validate:"required,min=3"`
	Attachments []string `json:"attachments"`
}

type UpdateFeedbackRequest struct {
	Title       string   `json:"title" validate:"omitempty,min=5"`
	Description string   `json:"description" validate:"omitempty,min=10"`
	Category    string   `json:"category"`
	Urgency     string   `json:"urgency" validate:"omitempty,oneof=Low Medium High"`
	Location    string   `json:"location"`
	Attachments []string `json:"attachments"`
}

type UpdateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type FeedbackCommentResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type FeedbackResponse struct {
	Id          uuid.UUID                 `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Category    string                    `json:"category"`
	Status      string                    `json:"status"`
	Urgency     string                    `json:"urgency"`
	Location    string                    `json:"location"`
	Upvotes     int                       `json:"upvotes"`
	Attachments []string                  `json:"attachments"`
	Comments    []FeedbackCommentResponse `json:"comments,omitempty"`
	UserEmail   string                    `json:"user_email,omitempty"`
	UserName    string                    `json:"user_name,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// StatusChangedMessage is the work-queue payload for the email worker.
type StatusChangedMessage struct {
	FeedbackId uuid.UUID `json:"feedback_id"`
	NewStatus  string    `json:"new_status"`
}

// AdminFeedbackQuery captures the admin listing filters. Sort accepts
// "newest", "popular" or "priority" (pending first, then upvotes).
type AdminFeedbackQuery struct {
	Status   string
	Category string
	Sort     string
	Limit    int
	Offset   int
}
