package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}
