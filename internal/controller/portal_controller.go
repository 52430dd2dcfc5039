package controller

import (
	"civicvoice-be/internal/dto"
	"civicvoice-be/internal/pkg/serverutils"
	"civicvoice-be/internal/portal"
	"civicvoice-be/internal/session"

	"github.com/gofiber/fiber/v2"
)

type IPortalController interface {
	RegisterRoutes(r fiber.Router)
}

type portalController struct {
	shell portal.IShellService
	store session.Store
}

func NewPortalController(shell portal.IShellService, store session.Store) IPortalController {
	return &portalController{shell: shell, store: store}
}

func (c *portalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/portal")
	h.Get("/shell", c.Shell)
	h.Post("/nav/navigate", c.Navigate)
	h.Post("/nav/tab", c.ActivateTab)
	h.Post("/nav/toggle", c.ToggleSection)
	h.Post("/nav/mobile", c.MobileMenu)
	h.Post("/nav/viewport", c.Viewport)
	h.Post("/logout", c.Logout)
}

// guardPath answers the session for a request, enforcing the role the
// target path demands. A missing, malformed or wrong-role session yields
// nil and the login redirect has already been written.
func (c *portalController) guardPath(ctx *fiber.Ctx, path string) *session.Record {
	token := serverutils.BearerToken(ctx)
	rec := c.store.Load(ctx.Context(), token)
	if rec == nil {
		c.redirectToLogin(ctx)
		return nil
	}

	if role, guarded := portal.RequiredRole(path); guarded && !rec.HasRole(role) {
		c.redirectToLogin(ctx)
		return nil
	}
	return rec
}

func (c *portalController) redirectToLogin(ctx *fiber.Ctx) {
	_ = ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"code":    401,
		"message": "authentication required",
		"data":    dto.RedirectResponse{Redirect: "/login"},
	})
}

func (c *portalController) Shell(ctx *fiber.Ctx) error {
	path := ctx.Query("path")

	rec := c.guardPath(ctx, path)
	if rec == nil {
		return nil
	}

	res := c.shell.Shell(ctx.Context(), rec, path)
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *portalController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	rec := c.guardPath(ctx, req.Path)
	if rec == nil {
		return nil
	}

	res := c.shell.Navigate(ctx.Context(), rec, req.Path)
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *portalController) ActivateTab(ctx *fiber.Ctx) error {
	var req dto.ActivateTabRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	rec := c.guardPath(ctx, "")
	if rec == nil {
		return nil
	}

	res := c.shell.ActivateTab(ctx.Context(), rec, req.TabId)
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *portalController) ToggleSection(ctx *fiber.Ctx) error {
	var req dto.ToggleSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	rec := c.guardPath(ctx, "")
	if rec == nil {
		return nil
	}

	res := c.shell.ToggleSection(ctx.Context(), rec, req.Title)
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *portalController) MobileMenu(ctx *fiber.Ctx) error {
	var req dto.MobileMenuRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	rec := c.guardPath(ctx, "")
	if rec == nil {
		return nil
	}

	res := c.shell.SetMobileMenu(ctx.Context(), rec, req.Open)
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

func (c *portalController) Viewport(ctx *fiber.Ctx) error {
	var req dto.ViewportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return err
	}

	rec := c.guardPath(ctx, "")
	if rec == nil {
		return nil
	}

	res := c.shell.SetViewportWidth(ctx.Context(), rec, req.Width)
	return ctx.JSON(serverutils.SuccessResponse("OK", res))
}

// Logout always answers the root redirect, whatever state the session was
// in. No session at all is not an error here.
func (c *portalController) Logout(ctx *fiber.Ctx) error {
	token := serverutils.BearerToken(ctx)
	res := c.shell.Logout(ctx.Context(), token)
	return ctx.JSON(serverutils.SuccessResponse("Logged out", res))
}
