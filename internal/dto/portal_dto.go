package dto

// LinkDTO is one renderable sidebar entry.
type LinkDTO struct {
	Title  string `json:"title"`
	Path   string `json:"path,omitempty"`
	TabId  string `json:"tab_id"`
	Active bool   `json:"active"`
	Depth  int    `json:"depth"`
}

type NavStateDTO struct {
	ActiveTab      string `json:"active_tab"`
	ExpandedParent string `json:"expanded_parent,omitempty"`
	MobileOpen     bool   `json:"mobile_open"`
}

// ShellResponse is the composed authenticated layout: header identity,
// sidebar links and the child view mounted for the active tab.
type ShellResponse struct {
	UserName  string      `json:"user_name"`
	UserEmail string      `json:"user_email"`
	UserType  string      `json:"user_type"`
	Nav       NavStateDTO `json:"nav"`
	Links     []LinkDTO   `json:"links"`
	View      string      `json:"view"`
}

type NavigateRequest struct {
	Path string `json:"path" validate:"required"`
}

type ActivateTabRequest struct {
	TabId string `json:"tab_id" validate:"required"`
}

type ToggleSectionRequest struct {
	Title string `json:"title" validate:"required"`
}

type MobileMenuRequest struct {
	Open bool `json:"open"`
}

type ViewportRequest struct {
	Width int `json:"width" validate:"required,min=1"`
}

// RedirectResponse is the envelope returned when the server instructs the
// client to change location (guard failures, logout).
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}
