package auth

import (
	"errors"
	"net/http"
	"strings"
)

var ErrForbidden = errors.New("forbidden")

// Role is an ordered permission tier; a higher tier covers everything the
// lower ones allow. Role strings arrive from token claims or env config and
// are mapped through ParseRole, so an unknown string simply grants nothing.
type Role int

const (
	RoleNone Role = iota
	RoleViewer
	RoleEditor
	RoleAdmin
)

func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "viewer":
		return RoleViewer
	case "editor":
		return RoleEditor
	case "admin":
		return RoleAdmin
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	switch r {
	case RoleViewer:
		return "viewer"
	case RoleEditor:
		return "editor"
	case RoleAdmin:
		return "admin"
	default:
		return ""
	}
}

// requiredRole maps an HTTP method to the tier it needs: reads go to
// viewers, every mutation needs an editor.
func requiredRole(method string) Role {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return RoleViewer
	default:
		return RoleEditor
	}
}

// MethodRoleAuthorizer is the core service's authorization policy, applied
// by the middleware after authentication.
func MethodRoleAuthorizer() AuthorizeFunc {
	return func(r *http.Request, identity Identity) error {
		if identity.Grants(requiredRole(r.Method)) {
			return nil
		}
		return ErrForbidden
	}
}
