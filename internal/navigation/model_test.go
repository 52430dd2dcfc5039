package navigation

import (
	"testing"

	"civicvoice-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func newAdminModel() *Model {
	return NewModel(MenuForRole(entity.UserRoleAdmin))
}

func newCivilianModel() *Model {
	return NewModel(MenuForRole(entity.UserRoleCivilian))
}

func TestDefaultTabsPerRole(t *testing.T) {
	assert.Equal(t, "dashboard", newAdminModel().State().ActiveTab)
	assert.Equal(t, "myfeedbacks", newCivilianModel().State().ActiveTab)
}

func TestNavigateResolvesNestedLeaf(t *testing.T) {
	m := newAdminModel()
	m.Navigate("/admin/feedback/pending")

	state := m.State()
	assert.Equal(t, "pending-feedback", state.ActiveTab)
	assert.Equal(t, "Feedback Management", state.ExpandedParent)
}

func TestNavigateToTopLevelCollapsesParent(t *testing.T) {
	m := newAdminModel()
	m.Navigate("/admin/feedback/all")
	assert.Equal(t, "Feedback Management", m.State().ExpandedParent)

	m.Navigate("/admin/settings")

	state := m.State()
	assert.Equal(t, "settings", state.ActiveTab)
	assert.Equal(t, "", state.ExpandedParent, "top-level navigation must auto-collapse the accordion")
}

func TestOnlyOneParentEverExpanded(t *testing.T) {
	m := newAdminModel()

	m.ToggleSection("Feedback Management")
	assert.Equal(t, "Feedback Management", m.State().ExpandedParent)

	// Toggling the same section again collapses it.
	m.ToggleSection("Feedback Management")
	assert.Equal(t, "", m.State().ExpandedParent)
}

func TestToggleIgnoresLeafTitles(t *testing.T) {
	m := newAdminModel()
	m.ToggleSection("Settings")
	assert.Equal(t, "", m.State().ExpandedParent)

	m.ToggleSection("No Such Section")
	assert.Equal(t, "", m.State().ExpandedParent)
}

func TestManualToggleOverriddenByNextNavigate(t *testing.T) {
	m := newAdminModel()

	m.Navigate("/admin/feedback/pending")
	m.ToggleSection("Feedback Management")
	assert.Equal(t, "", m.State().ExpandedParent, "manual collapse wins until next navigation")

	m.Navigate("/admin/feedback/pending")
	assert.Equal(t, "Feedback Management", m.State().ExpandedParent, "navigation re-derives expansion")
}

func TestAdminAccordionClickSequence(t *testing.T) {
	m := newAdminModel()

	// Open the section, then pick a child, as an admin clicking through the
	// sidebar would.
	m.ToggleSection("Feedback Management")
	m.SetActiveTab("pending-feedback")

	state := m.State()
	assert.Equal(t, "pending-feedback", state.ActiveTab)
	assert.Equal(t, "Feedback Management", state.ExpandedParent)
}

func TestMobileMenuClosesOnNavigation(t *testing.T) {
	m := newAdminModel()

	m.SetMobileOpen(true)
	assert.True(t, m.State().MobileOpen)

	m.Navigate("/admin/aiinsights")
	assert.False(t, m.State().MobileOpen)

	m.SetMobileOpen(true)
	m.SetActiveTab("settings")
	assert.False(t, m.State().MobileOpen)
}

func TestMobileMenuClosesPastBreakpoint(t *testing.T) {
	m := newAdminModel()

	m.SetMobileOpen(true)
	m.SetViewportWidth(MobileBreakpoint - 1)
	assert.True(t, m.State().MobileOpen, "narrow viewport keeps the menu open")

	m.SetViewportWidth(MobileBreakpoint)
	assert.False(t, m.State().MobileOpen, "reaching the breakpoint forces the menu closed")

	// Growing further must not reopen anything.
	m.SetViewportWidth(1920)
	assert.False(t, m.State().MobileOpen)
}

func TestCivilianTabsShareOneRoute(t *testing.T) {
	m := newCivilianModel()

	m.SetActiveTab("create")
	assert.Equal(t, "create", m.State().ActiveTab)

	// Re-navigating to the shared route keeps the selected tab.
	m.Navigate("/civilian")
	assert.Equal(t, "create", m.State().ActiveTab)
}

func TestNavigateUnknownPathKeepsState(t *testing.T) {
	m := newAdminModel()
	m.Navigate("/admin/feedback/pending")

	m.Navigate("/does-not-exist")

	state := m.State()
	assert.Equal(t, "pending-feedback", state.ActiveTab)
	assert.Equal(t, "Feedback Management", state.ExpandedParent)
}

func TestNavigatePrefersExactMatchOverPrefix(t *testing.T) {
	m := newAdminModel()

	// "/admin" must not swallow its deeper siblings.
	m.Navigate("/admin/feedback/resolved")
	assert.Equal(t, "resolved-feedback", m.State().ActiveTab)

	m.Navigate("/admin")
	assert.Equal(t, "dashboard", m.State().ActiveTab)
	assert.Equal(t, "", m.State().ExpandedParent)
}

func TestLinksEmitChildrenOnlyWhenExpanded(t *testing.T) {
	m := newAdminModel()

	var titles []string
	for _, link := range m.Links() {
		titles = append(titles, link.Title)
	}
	assert.NotContains(t, titles, "Pending Review")

	m.ToggleSection("Feedback Management")

	titles = titles[:0]
	for _, link := range m.Links() {
		titles = append(titles, link.Title)
	}
	assert.Contains(t, titles, "Pending Review")
	assert.Contains(t, titles, "All Feedback")
	assert.Contains(t, titles, "Resolved Issues")
}

func TestParentLinkActiveWhenChildActive(t *testing.T) {
	m := newAdminModel()
	m.Navigate("/admin/feedback/pending")

	for _, link := range m.Links() {
		if link.Title == "Feedback Management" {
			assert.True(t, link.Active)
			return
		}
	}
	t.Fatal("parent link not found")
}
