package navigation

// MobileBreakpoint is the viewport width (px) at which the mobile menu
// stops existing and is forced closed.
const MobileBreakpoint = 768

// Link is one renderable sidebar entry derived from the menu tree.
type Link struct {
	Title  string
	Path   string
	TabID  string
	Active bool
	Depth  int
}

// State is the derived navigation UI state for one render.
type State struct {
	ActiveTab      string
	ExpandedParent string
	MobileOpen     bool
}

// Model tracks the navigation UI state for one authenticated session.
// Auto-derived expansion follows the current path; manual toggles override
// it until the next navigation. Only one parent is ever expanded.
type Model struct {
	menu           Menu
	activeTab      string
	expandedParent string
	mobileOpen     bool
}

func NewModel(menu Menu) *Model {
	m := &Model{menu: menu}
	m.SetActiveTab(menu.DefaultTab)
	return m
}

// Navigate recomputes the active tab and expansion from a URL path. The
// mobile menu always closes on navigation. If the currently active leaf
// still owns the path (tabs sharing one route, e.g. the civilian
// dashboard), the active tab is left alone.
func (m *Model) Navigate(path string) {
	m.mobileOpen = false

	if leaf, _ := m.menu.leafByTab(m.activeTab); leaf != nil && leaf.RoutePath == path {
		m.syncExpansion()
		return
	}

	leaf, parent := m.menu.leafByPath(path)
	if leaf == nil {
		return
	}
	m.activeTab = leaf.TabID
	if parent != nil {
		m.expandedParent = parent.Title
	} else {
		m.expandedParent = ""
	}
}

// SetActiveTab switches tabs directly (sidebar click). Expansion follows
// the selected leaf; the mobile menu closes.
func (m *Model) SetActiveTab(tabID string) {
	leaf, parent := m.menu.leafByTab(tabID)
	if leaf == nil {
		return
	}
	m.activeTab = tabID
	m.mobileOpen = false
	if parent != nil {
		m.expandedParent = parent.Title
	} else {
		m.expandedParent = ""
	}
}

// ToggleSection flips a parent's accordion state manually. Opening one
// parent collapses any other.
func (m *Model) ToggleSection(title string) {
	for _, item := range m.menu.Items {
		if !item.IsParent() || item.Title != title {
			continue
		}
		if m.expandedParent == title {
			m.expandedParent = ""
		} else {
			m.expandedParent = title
		}
		return
	}
}

func (m *Model) SetMobileOpen(open bool) {
	m.mobileOpen = open
}

// SetViewportWidth closes the mobile menu when the viewport grows past the
// breakpoint. UX parity with the source sidebar, not a correctness rule.
func (m *Model) SetViewportWidth(width int) {
	if width >= MobileBreakpoint {
		m.mobileOpen = false
	}
}

// syncExpansion re-derives expansion for the active tab.
func (m *Model) syncExpansion() {
	if _, parent := m.menu.leafByTab(m.activeTab); parent != nil {
		m.expandedParent = parent.Title
	} else {
		m.expandedParent = ""
	}
}

func (m *Model) State() State {
	return State{
		ActiveTab:      m.activeTab,
		ExpandedParent: m.expandedParent,
		MobileOpen:     m.mobileOpen,
	}
}

// Links flattens the tree into renderable descriptors. Children are only
// emitted for the expanded parent.
func (m *Model) Links() []Link {
	var links []Link
	for _, item := range m.menu.Items {
		if item.IsParent() {
			active := false
			for _, child := range item.Children {
				if child.TabID == m.activeTab {
					active = true
					break
				}
			}
			links = append(links, Link{
				Title:  item.Title,
				TabID:  item.TabID,
				Active: active,
				Depth:  0,
			})
			if m.expandedParent != item.Title {
				continue
			}
			for _, child := range item.Children {
				links = append(links, Link{
					Title:  child.Title,
					Path:   child.RoutePath,
					TabID:  child.TabID,
					Active: child.TabID == m.activeTab,
					Depth:  1,
				})
			}
			continue
		}
		links = append(links, Link{
			Title:  item.Title,
			Path:   item.RoutePath,
			TabID:  item.TabID,
			Active: item.TabID == m.activeTab,
			Depth:  0,
		})
	}
	return links
}
