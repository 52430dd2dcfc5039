package navigation

import "civicvoice-be/internal/entity"

// Item is a node of the static menu tree. A leaf carries a RoutePath; a
// parent carries Children and no direct path.
type Item struct {
	Title     string
	RoutePath string
	TabID     string
	Children  []Item
}

func (i Item) IsParent() bool {
	return len(i.Children) > 0
}

// Menu is the immutable per-role menu configuration.
type Menu struct {
	Items      []Item
	DefaultTab string
}

var civilianMenu = Menu{
	DefaultTab: "myfeedbacks",
	Items: []Item{
		{Title: "Home", RoutePath: "/civilian", TabID: "home"},
		{Title: "Create Feedback", RoutePath: "/civilian", TabID: "create"},
		{Title: "My Feedbacks", RoutePath: "/civilian", TabID: "myfeedbacks"},
	},
}

var adminMenu = Menu{
	DefaultTab: "dashboard",
	Items: []Item{
		{Title: "Dashboard", RoutePath: "/admin", TabID: "dashboard"},
		{
			Title: "Feedback Management",
			TabID: "feedback-management",
			Children: []Item{
				{Title: "All Feedback", RoutePath: "/admin/feedback/all", TabID: "all-feedback"},
				{Title: "Pending Review", RoutePath: "/admin/feedback/pending", TabID: "pending-feedback"},
				{Title: "Resolved Issues", RoutePath: "/admin/feedback/resolved", TabID: "resolved-feedback"},
			},
		},
		{Title: "AI Insights", RoutePath: "/admin/aiinsights", TabID: "ai-insights"},
		{Title: "Settings", RoutePath: "/admin/settings", TabID: "settings"},
	},
}

// MenuForRole returns the static menu tree for a role.
func MenuForRole(role entity.UserRole) Menu {
	if role == entity.UserRoleAdmin {
		return adminMenu
	}
	return civilianMenu
}

// findLeaf returns the matching leaf and, when nested, its parent.
func (m Menu) findLeaf(match func(Item) bool) (leaf *Item, parent *Item) {
	for idx := range m.Items {
		item := &m.Items[idx]
		if item.IsParent() {
			for cIdx := range item.Children {
				child := &item.Children[cIdx]
				if match(*child) {
					return child, item
				}
			}
			continue
		}
		if match(*item) {
			return item, nil
		}
	}
	return nil, nil
}

// leafByTab looks a leaf up by tab id.
func (m Menu) leafByTab(tabID string) (*Item, *Item) {
	return m.findLeaf(func(i Item) bool { return i.TabID == tabID })
}

// leafByPath resolves the leaf whose route matches the given path. An
// exact match wins; otherwise the longest prefix match does, so /admin
// never swallows /admin/feedback/pending.
func (m Menu) leafByPath(path string) (*Item, *Item) {
	if leaf, parent := m.findLeaf(func(i Item) bool { return i.RoutePath == path }); leaf != nil {
		return leaf, parent
	}

	var bestLeaf, bestParent *Item
	best := -1
	walk := func(item *Item, parent *Item) {
		if item.RoutePath != "" && pathMatches(item.RoutePath, path) && len(item.RoutePath) > best {
			best = len(item.RoutePath)
			bestLeaf, bestParent = item, parent
		}
	}
	for idx := range m.Items {
		item := &m.Items[idx]
		if item.IsParent() {
			for cIdx := range item.Children {
				walk(&item.Children[cIdx], item)
			}
			continue
		}
		walk(item, nil)
	}
	return bestLeaf, bestParent
}

// pathMatches reports whether a leaf route owns the current path: exact
// match, or prefix match for parameterized routes like /civilian-update/:id.
func pathMatches(route, path string) bool {
	if route == "" {
		return false
	}
	if route == path {
		return true
	}
	return len(path) > len(route) && path[:len(route)] == route && path[len(route)] == '/'
}
