package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Feedback struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text;not null"`
	Category    string         `gorm:"type:varchar(100);not null;index"`
	Status      string         `gorm:"type:varchar(50);not null;default:'PENDING';index"`
	Urgency     string         `gorm:"type:varchar(20);not null;default:'Low'"`
	Location    string         `gorm:"type:varchar(255)"`
	Upvotes     int            `gorm:"default:0"`
	Attachments datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	User     *User             `gorm:"foreignKey:UserId"`
	Comments []FeedbackComment `gorm:"foreignKey:FeedbackId"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

type FeedbackComment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FeedbackId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId     uuid.UUID `gorm:"type:uuid;not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (FeedbackComment) TableName() string {
	return "feedback_comments"
}
