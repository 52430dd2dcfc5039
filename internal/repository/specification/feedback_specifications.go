package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

type MostUpvoted struct{}

func (s MostUpvoted) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("upvotes DESC")
}

// PendingFirst orders pending items ahead of everything else, then by
// upvotes, matching the admin triage view.
type PendingFirst struct{}

func (s PendingFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("CASE WHEN status = 'PENDING' THEN 0 ELSE 1 END, upvotes DESC")
}

type Paginate struct {
	Limit  int
	Offset int
}

func (s Paginate) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}
