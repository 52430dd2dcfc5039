package session

import (
	"encoding/json"

	"civicvoice-be/internal/entity"

	"github.com/google/uuid"
)

// UserPayload mirrors the stored user object. "user_type" is the storage
// name for the role.
type UserPayload struct {
	Id        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	UserType  string    `json:"user_type"`
}

// Record is the persisted session: token and user are always written
// together as one atomic value.
type Record struct {
	AccessToken string       `json:"access_token"`
	User        *UserPayload `json:"user"`
}

func NewRecord(token string, user *entity.User) *Record {
	return &Record{
		AccessToken: token,
		User: &UserPayload{
			Id:        user.Id,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			UserType:  string(user.Role),
		},
	}
}

// HasRole reports whether the record carries the given role. A record
// without a user payload never matches any role.
func (r *Record) HasRole(role entity.UserRole) bool {
	if r == nil || r.User == nil {
		return false
	}
	return r.User.UserType == string(role)
}

// decodeRecord parses a stored value. Malformed JSON or a half-populated
// record degrades to nil, never an error.
func decodeRecord(raw []byte) *Record {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	if rec.AccessToken == "" || rec.User == nil {
		return nil
	}
	return &rec
}
