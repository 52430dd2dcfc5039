package mapper

import (
	"encoding/json"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/model"

	"gorm.io/datatypes"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}

	var attachments []string
	if len(f.Attachments) > 0 {
		// Corrupt attachment payloads degrade to an empty list.
		_ = json.Unmarshal(f.Attachments, &attachments)
	}

	e := &entity.Feedback{
		Id:          f.Id,
		UserId:      f.UserId,
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Status:      entity.FeedbackStatus(f.Status),
		Urgency:     entity.FeedbackUrgency(f.Urgency),
		Location:    f.Location,
		Upvotes:     f.Upvotes,
		Attachments: attachments,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}

	if f.User != nil {
		e.UserEmail = f.User.Email
		e.UserName = f.User.FirstName + " " + f.User.LastName
	}

	for _, c := range f.Comments {
		e.Comments = append(e.Comments, *m.CommentToEntity(&c))
	}

	return e
}

func (m *FeedbackMapper) ToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}

	attachments := datatypes.JSON("[]")
	if len(f.Attachments) > 0 {
		if raw, err := json.Marshal(f.Attachments); err == nil {
			attachments = datatypes.JSON(raw)
		}
	}

	return &model.Feedback{
		Id:          f.Id,
		UserId:      f.UserId,
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Status:      string(f.Status),
		Urgency:     string(f.Urgency),
		Location:    f.Location,
		Upvotes:     f.Upvotes,
		Attachments: attachments,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (m *FeedbackMapper) ToEntities(feedbacks []*model.Feedback) []*entity.Feedback {
	entities := make([]*entity.Feedback, len(feedbacks))
	for i, f := range feedbacks {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FeedbackMapper) CommentToEntity(c *model.FeedbackComment) *entity.FeedbackComment {
	if c == nil {
		return nil
	}
	return &entity.FeedbackComment{
		Id:         c.Id,
		FeedbackId: c.FeedbackId,
		UserId:     c.UserId,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
	}
}

func (m *FeedbackMapper) CommentToModel(c *entity.FeedbackComment) *model.FeedbackComment {
	if c == nil {
		return nil
	}
	return &model.FeedbackComment{
		Id:         c.Id,
		FeedbackId: c.FeedbackId,
		UserId:     c.UserId,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
	}
}
