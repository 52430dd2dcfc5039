package controller

import (
	"errors"

	"civicvoice-be/internal/dto"
	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/pkg/serverutils"
	"civicvoice-be/internal/service"
	"civicvoice-be/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
}

type feedbackController struct {
	service service.IFeedbackService
	store   session.Store
}

func NewFeedbackController(svc service.IFeedbackService, store session.Store) IFeedbackController {
	return &feedbackController{service: svc, store: store}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback", serverutils.RequireRole(c.store, entity.UserRoleCivilian))
	h.Post("/", c.Create)
	h.Get("/mine", c.ListOwn)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/upvote", c.Upvote)
}

func feedbackStatusFromErr(err error) int {
	switch {
	case errors.Is(err, service.ErrFeedbackNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotOwner):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	idStr, _ := ctx.Locals(serverutils.UserIdLocal).(string)
	return uuid.Parse(idStr)
}

func (c *feedbackController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feedback submitted", res))
}

func (c *feedbackController) ListOwn(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.ListOwn(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *feedbackController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feedback id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		code := feedbackStatusFromErr(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *feedbackController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feedback id")
	}

	var req dto.UpdateFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.service.Update(ctx.Context(), userId, id, &req)
	if err != nil {
		code := feedbackStatusFromErr(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback updated", res))
}

func (c *feedbackController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feedback id")
	}

	userId, err := currentUserId(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		code := feedbackStatusFromErr(err)
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback deleted", nil))
}

func (c *feedbackController) Upvote(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feedback id")
	}

	if err := c.service.Upvote(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Upvoted", nil))
}
