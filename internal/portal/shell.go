package portal

import (
	"context"
	"time"

	"civicvoice-be/internal/dto"
	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/navigation"
	"civicvoice-be/internal/pkg/logger"
	"civicvoice-be/internal/session"

	gocache "github.com/patrickmn/go-cache"
)

// TokenRevoker performs upstream token revocation on logout. Failures are
// logged and swallowed, a dead upstream must not block logout.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

type IShellService interface {
	Shell(ctx context.Context, rec *session.Record, path string) dto.ShellResponse
	Navigate(ctx context.Context, rec *session.Record, path string) dto.ShellResponse
	ActivateTab(ctx context.Context, rec *session.Record, tabID string) dto.ShellResponse
	ToggleSection(ctx context.Context, rec *session.Record, title string) dto.ShellResponse
	SetMobileMenu(ctx context.Context, rec *session.Record, open bool) dto.ShellResponse
	SetViewportWidth(ctx context.Context, rec *session.Record, width int) dto.ShellResponse
	Logout(ctx context.Context, token string) dto.RedirectResponse
}

type shellService struct {
	store   session.Store
	revoker TokenRevoker
	logger  logger.ILogger

	// Per-session navigation models, keyed by access token. Expiry tracks
	// the session TTL so abandoned models do not pile up.
	models *gocache.Cache
}

func NewShellService(store session.Store, revoker TokenRevoker, log logger.ILogger) IShellService {
	return &shellService{
		store:   store,
		revoker: revoker,
		logger:  log,
		models:  gocache.New(24*time.Hour, 10*time.Minute),
	}
}

// modelFor returns the session's navigation model, creating one at the
// role's default tab on first sight.
func (s *shellService) modelFor(rec *session.Record) *navigation.Model {
	if cached, found := s.models.Get(rec.AccessToken); found {
		return cached.(*navigation.Model)
	}
	model := navigation.NewModel(navigation.MenuForRole(entity.UserRole(rec.User.UserType)))
	s.models.SetDefault(rec.AccessToken, model)
	return model
}

func (s *shellService) compose(rec *session.Record, model *navigation.Model) dto.ShellResponse {
	state := model.State()

	links := model.Links()
	linkDTOs := make([]dto.LinkDTO, 0, len(links))
	for _, link := range links {
		linkDTOs = append(linkDTOs, dto.LinkDTO{
			Title:  link.Title,
			Path:   link.Path,
			TabId:  link.TabID,
			Active: link.Active,
			Depth:  link.Depth,
		})
	}

	return dto.ShellResponse{
		UserName:  rec.User.FirstName + " " + rec.User.LastName,
		UserEmail: rec.User.Email,
		UserType:  rec.User.UserType,
		Nav: dto.NavStateDTO{
			ActiveTab:      state.ActiveTab,
			ExpandedParent: state.ExpandedParent,
			MobileOpen:     state.MobileOpen,
		},
		Links: linkDTOs,
		View:  ViewForTab(state.ActiveTab),
	}
}

func (s *shellService) Shell(ctx context.Context, rec *session.Record, path string) dto.ShellResponse {
	model := s.modelFor(rec)
	if path != "" {
		model.Navigate(path)
	}
	return s.compose(rec, model)
}

func (s *shellService) Navigate(ctx context.Context, rec *session.Record, path string) dto.ShellResponse {
	model := s.modelFor(rec)
	model.Navigate(path)
	return s.compose(rec, model)
}

func (s *shellService) ActivateTab(ctx context.Context, rec *session.Record, tabID string) dto.ShellResponse {
	model := s.modelFor(rec)
	model.SetActiveTab(tabID)
	return s.compose(rec, model)
}

func (s *shellService) ToggleSection(ctx context.Context, rec *session.Record, title string) dto.ShellResponse {
	model := s.modelFor(rec)
	model.ToggleSection(title)
	return s.compose(rec, model)
}

func (s *shellService) SetMobileMenu(ctx context.Context, rec *session.Record, open bool) dto.ShellResponse {
	model := s.modelFor(rec)
	model.SetMobileOpen(open)
	return s.compose(rec, model)
}

func (s *shellService) SetViewportWidth(ctx context.Context, rec *session.Record, width int) dto.ShellResponse {
	model := s.modelFor(rec)
	model.SetViewportWidth(width)
	return s.compose(rec, model)
}

// Logout revokes the token upstream (best effort), drops the cached nav
// model and clears the session. Calling it for an already-cleared token is
// a no-op with the same redirect.
func (s *shellService) Logout(ctx context.Context, token string) dto.RedirectResponse {
	if s.revoker != nil {
		if err := s.revoker.Revoke(ctx, token); err != nil {
			s.logger.Warn("Portal", "Token revocation failed", map[string]interface{}{"error": err.Error()})
		}
	}

	s.models.Delete(token)

	if err := s.store.Clear(ctx, token); err != nil {
		s.logger.Warn("Portal", "Session clear failed", map[string]interface{}{"error": err.Error()})
	}

	return dto.RedirectResponse{Redirect: "/"}
}
