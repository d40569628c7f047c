// AngelaMos | 2026
// policy.go

// Package policy decides whether a caller may perform an operation. It
// holds no state and does no I/O; callers load the resource owner first
// and pass its id in.
package policy

import (
	"fmt"

	"github.com/carterperez-dev/hours-tracker/internal/core"
)

const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleEmployee   = "employee"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

type Action int

const (
	ActionRegisterUser Action = iota + 1
	ActionListUsers
	ActionViewUser
	ActionUpdateUser
	ActionDeleteUser
	ActionCreateEntry
	ActionListEntries
	ActionUpdateEntry
	ActionDeleteEntry
	ActionSalaryReport
	ActionViewStats
)

var actionNames = map[Action]string{
	ActionRegisterUser: "register user",
	ActionListUsers:    "list users",
	ActionViewUser:     "view user",
	ActionUpdateUser:   "update user",
	ActionDeleteUser:   "delete user",
	ActionCreateEntry:  "create time entry",
	ActionListEntries:  "list time entries",
	ActionUpdateEntry:  "update time entry",
	ActionDeleteEntry:  "delete time entry",
	ActionSalaryReport: "salary report",
	ActionViewStats:    "view stats",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// IsManager is true for admins and supervisors.
func (c Caller) IsManager() bool {
	return c.Role == RoleAdmin || c.Role == RoleSupervisor
}

// Authorize returns nil when caller may perform action on a resource owned
// by ownerID, or an error wrapping core.ErrForbidden. ownerID is ignored
// for actions that are not owner-scoped.
//
// Supervisors manage users and read reports, but viewing another user's
// profile and touching another user's entries is limited to admins.
func Authorize(caller Caller, action Action, ownerID string) error {
	if caller.ID == "" || !ValidRole(caller.Role) {
		return fmt.Errorf("%s: %w", action, core.ErrForbidden)
	}

	var allowed bool

	switch action {
	case ActionRegisterUser,
		ActionListUsers,
		ActionUpdateUser,
		ActionDeleteUser,
		ActionSalaryReport:
		allowed = caller.IsManager()

	case ActionViewUser,
		ActionUpdateEntry,
		ActionDeleteEntry:
		allowed = caller.IsAdmin() || caller.ID == ownerID

	case ActionCreateEntry, ActionListEntries:
		allowed = true

	case ActionViewStats:
		allowed = caller.IsAdmin()
	}

	if !allowed {
		return fmt.Errorf("%s: %w", action, core.ErrForbidden)
	}

	return nil
}

// EntryScope returns the owner filter for listing time entries: empty for
// admins (every entry), the caller's own id for everyone else.
func EntryScope(caller Caller) string {
	if caller.IsAdmin() {
		return ""
	}
	return caller.ID
}
