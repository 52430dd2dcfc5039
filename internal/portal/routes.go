package portal

import (
	"strings"

	"civicvoice-be/internal/entity"
)

// guardedRoute binds a path prefix to the role allowed through it.
type guardedRoute struct {
	Prefix string
	Role   entity.UserRole
}

// Order matters: more specific prefixes first so /civilian-update is not
// claimed by /civilian.
var guardedRoutes = []guardedRoute{
	{Prefix: "/civilian-update", Role: entity.UserRoleCivilian},
	{Prefix: "/civilian", Role: entity.UserRoleCivilian},
	{Prefix: "/admin", Role: entity.UserRoleAdmin},
}

var publicPaths = map[string]struct{}{
	"/":         {},
	"/register": {},
	"/login":    {},
}

// RequiredRole reports the role a path demands. ok is false for public and
// unknown paths, which need no session at all.
func RequiredRole(path string) (entity.UserRole, bool) {
	if _, public := publicPaths[path]; public {
		return "", false
	}
	for _, route := range guardedRoutes {
		if ownsPath(route.Prefix, path) {
			return route.Role, true
		}
	}
	return "", false
}

func ownsPath(prefix, path string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix) && len(path) > len(prefix) && path[len(prefix)] == '/'
}
