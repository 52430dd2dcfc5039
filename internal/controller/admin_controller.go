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

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	adminService    service.IAdminService
	feedbackService service.IFeedbackService
	store           session.Store
}

func NewAdminController(adminService service.IAdminService, feedbackService service.IFeedbackService, store session.Store) IAdminController {
	return &adminController{
		adminService:    adminService,
		feedbackService: feedbackService,
		store:           store,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", serverutils.RequireRole(c.store, entity.UserRoleAdmin))
	h.Get("/dashboard", c.Dashboard)
	h.Get("/insights", c.Insights)
	h.Get("/feedback", c.ListFeedback)
	h.Patch("/feedback/:id/status", c.UpdateFeedbackStatus)
	h.Get("/users", c.ListUsers)
	h.Patch("/users/:id/status", c.UpdateUserStatus)
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboardStats(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) Insights(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetInsights(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) ListFeedback(ctx *fiber.Ctx) error {
	query := dto.AdminFeedbackQuery{
		Status:   ctx.Query("status"),
		Category: ctx.Query("category"),
		Sort:     ctx.Query("sort"),
		Limit:    ctx.QueryInt("limit", 20),
		Offset:   ctx.QueryInt("offset", 0),
	}

	res, err := c.feedbackService.ListAll(ctx.Context(), &query)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) UpdateFeedbackStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feedback id")
	}

	var req dto.UpdateFeedbackStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	res, err := c.feedbackService.UpdateStatus(ctx.Context(), id, &req)
	if err != nil {
		code := fiber.StatusBadRequest
		if errors.Is(err, service.ErrFeedbackNotFound) {
			code = fiber.StatusNotFound
		}
		return ctx.Status(code).JSON(serverutils.ErrorResponse(code, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Status updated", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListUsers(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=active blocked"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUserStatus(ctx.Context(), id, req.Status); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("User status updated", nil))
}
