package gate

import "strings"

// Permission is an allowed action on a resource type, written
// "resource:action" (e.g. "group:assign", "benchmark:update").
type Permission string

// NewPermission builds a permission from resource type and action.
func NewPermission(resource string, action Action) Permission {
	return Permission(resource + ":" + string(action))
}

// Parse splits a permission into resource type and action.
func (p Permission) Parse() (resource string, action Action) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], Action(parts[1])
}

// Wildcards.
const (
	WildcardAll                     = "*"
	PermissionSuperAdmin Permission = "*:*"
)

// Matches reports whether this permission satisfies a requested one.
// "*:*" matches everything; "group:*" matches every group action.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionSuperAdmin {
		return true
	}
	if p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return res == reqRes && string(act) == WildcardAll
}
