// Package authz holds the role and ownership rules for the whole API.
// Every handler resolves permissions through these predicates instead of
// branching on the role inline, so the rules live in exactly one place.
//
// The rules, in short: role is the sole discriminator for team and user
// administration; ownership is the sole discriminator for a member's
// content; a manager bypasses ownership entirely. Content outside an
// actor's scope is reported as absent, never as forbidden.
package authz

import (
	"github.com/contentdesk/contentdesk-api/internal/domain/entity"
)

// Actor is the authenticated identity making a request, taken verbatim
// from the session token claims. The claims are trusted as-is for the
// token lifetime; role or team changes apply on reissue.
type Actor struct {
	UserID string
	Email  string
	Role   string
	TeamID *string
}

// IsManager reports whether the actor holds the manager role.
func (a Actor) IsManager() bool {
	return a.Role == entity.RoleManager
}

// CanManageTeams permits any team operation: list, read, create, update,
// delete. Teams have no ownership concept, only the role gate.
func CanManageTeams(a Actor) bool {
	return a.IsManager()
}

// CanAdministerUsers permits user create, update, and delete.
func CanAdministerUsers(a Actor) bool {
	return a.IsManager()
}

// CanViewUser permits reading a single user record: managers read
// anyone; a member reads a user only when both carry the same non-null
// team id.
func CanViewUser(a Actor, target *entity.User) bool {
	if a.IsManager() {
		return true
	}
	return a.TeamID != nil && target.TeamID != nil && *a.TeamID == *target.TeamID
}

// UserScope narrows a user listing. All takes precedence; when All is
// false and TeamID is nil the visible set is empty (member without a
// team).
type UserScope struct {
	All    bool
	TeamID *string
}

// ListUsersScope returns the user-listing scope for the actor.
func ListUsersScope(a Actor) UserScope {
	if a.IsManager() {
		return UserScope{All: true}
	}
	return UserScope{TeamID: a.TeamID}
}

// ContentScope returns the owner filter for content queries: nil for
// managers (unscoped), otherwise the actor's own id. Repositories apply
// the filter inside the query itself, so rows outside the scope are
// never loaded and out-of-scope access surfaces as not-found.
func ContentScope(a Actor) *string {
	if a.IsManager() {
		return nil
	}
	owner := a.UserID
	return &owner
}

// NormalizeRole maps an arbitrary requested role to a valid one at user
// creation: exactly "manager" passes through, everything else becomes
// "member".
func NormalizeRole(role string) string {
	if role == entity.RoleManager {
		return entity.RoleManager
	}
	return entity.RoleMember
}

// ValidRole reports whether the value names a known role. Used on user
// update, where an unknown role is silently ignored and the stored role
// kept.
func ValidRole(role string) bool {
	return role == entity.RoleManager || role == entity.RoleMember
}
