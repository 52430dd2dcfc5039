package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackStatus string
type FeedbackUrgency string

const (
	FeedbackStatusPending    FeedbackStatus = "PENDING"
	FeedbackStatusInProgress FeedbackStatus = "IN PROGRESS"
	FeedbackStatusResolved   FeedbackStatus = "RESOLVED"

	FeedbackUrgencyLow    FeedbackUrgency = "Low"
	FeedbackUrgencyMedium FeedbackUrgency = "Medium"
	FeedbackUrgencyHigh   FeedbackUrgency = "High"
)

type Feedback struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Description string
	Category    string
	Status      FeedbackStatus
	Urgency     FeedbackUrgency
	Location    string
	Upvotes     int
	Attachments []string
	Comments    []FeedbackComment
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Denormalized submitter info for admin listings.
	UserEmail string
	UserName  string
}

type FeedbackComment struct {
	Id         uuid.UUID
	FeedbackId uuid.UUID
	UserId     uuid.UUID
	Body       string
	CreatedAt  time.Time
}

// MonthlyFeedbackCount is one point of the submission trend series.
type MonthlyFeedbackCount struct {
	Month string
	Count int
}

func ValidFeedbackStatus(s string) bool {
	switch FeedbackStatus(s) {
	case FeedbackStatusPending, FeedbackStatusInProgress, FeedbackStatusResolved:
		return true
	}
	return false
}
