// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is stored in users.role and carried in the "rol" claim.
type UserRole string

// Each role includes the permissions of the ones below it.
const (
	RoleAdmin     UserRole = "admin"     // manages accounts
	RoleDeveloper UserRole = "developer" // reads the activity log
	RoleEditor    UserRole = "editor"    // edits content and media
)

// Roles lists every assignable role, highest first.
var Roles = []UserRole{RoleAdmin, RoleDeveloper, RoleEditor}

var rank = map[UserRole]int{RoleEditor: 1, RoleDeveloper: 2, RoleAdmin: 3}

// AtLeast reports whether r grants everything target does. Unknown roles
// grant nothing.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.Valid() && rank[r] >= rank[target]
}

// Valid reports whether r is one of [Roles].
func (r UserRole) Valid() bool {
	return rank[r] > 0
}
