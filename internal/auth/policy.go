package auth

import (
	"errors"
	"fmt"

	"tracker/internal/model"
)

// ErrForbidden is returned when a role may not invoke an operation.
var ErrForbidden = errors.New("insufficient role")

// Operation names a gated resource operation.
type Operation string

const (
	OpProjectList   Operation = "project.list"
	OpProjectGet    Operation = "project.get"
	OpProjectCreate Operation = "project.create"
	OpProjectUpdate Operation = "project.update"
	OpProjectDelete Operation = "project.delete"

	OpTaskList   Operation = "task.list"
	OpTaskGet    Operation = "task.get"
	OpTaskCreate Operation = "task.create"
	OpTaskUpdate Operation = "task.update"
	OpTaskStatus Operation = "task.status"
	OpTaskDelete Operation = "task.delete"

	OpCommentList   Operation = "comment.list"
	OpCommentGet    Operation = "comment.get"
	OpCommentCreate Operation = "comment.create"
	OpCommentUpdate Operation = "comment.update"
	OpCommentDelete Operation = "comment.delete"

	OpUserList   Operation = "user.list"
	OpUserMe     Operation = "user.me"
	OpUserRole   Operation = "user.role"
	OpUserDelete Operation = "user.delete"

	OpHierarchyView Operation = "hierarchy.view"
	OpStatsView     Operation = "stats.view"
)

type roleSet map[model.Role]struct{}

func roles(rs ...model.Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

var (
	anyone  = roles(model.RoleGuest, model.RoleMember, model.RoleAdmin)
	editors = roles(model.RoleMember, model.RoleAdmin)
	admins  = roles(model.RoleAdmin)
)

// policy is the single source of truth for role gating. Members may edit any
// project, task or comment; there is no per-creator ownership check.
var policy = map[Operation]roleSet{
	OpProjectList:   anyone,
	OpProjectGet:    anyone,
	OpProjectCreate: editors,
	OpProjectUpdate: editors,
	OpProjectDelete: admins,

	OpTaskList:   anyone,
	OpTaskGet:    anyone,
	OpTaskCreate: editors,
	OpTaskUpdate: editors,
	OpTaskStatus: editors,
	OpTaskDelete: admins,

	OpCommentList:   anyone,
	OpCommentGet:    anyone,
	OpCommentCreate: editors,
	OpCommentUpdate: editors,
	OpCommentDelete: admins,

	OpUserList:   admins,
	OpUserMe:     anyone,
	OpUserRole:   admins,
	OpUserDelete: admins,

	OpHierarchyView: anyone,
	OpStatsView:     anyone,
}

// Allowed reports whether role may invoke op. Unknown operations are denied.
func Allowed(op Operation, role model.Role) bool {
	set, ok := policy[op]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

// Authorize returns ErrForbidden unless id's role may invoke op.
func Authorize(op Operation, id Identity) error {
	if !Allowed(op, id.Role) {
		return fmt.Errorf("%w: %s may not %s", ErrForbidden, id.Role, op)
	}
	return nil
}

// RolesFor lists the roles permitted to invoke op, lowest privilege first.
func RolesFor(op Operation) []model.Role {
	set := policy[op]
	out := make([]model.Role, 0, len(set))
	for _, r := range model.Roles {
		if _, ok := set[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Operations returns every gated operation.
func Operations() []Operation {
	ops := make([]Operation, 0, len(policy))
	for op := range policy {
		ops = append(ops, op)
	}
	return ops
}
