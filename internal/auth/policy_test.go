package auth

import (
	"errors"
	"testing"

	"tracker/internal/model"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		op     Operation
		guest  bool
		member bool
		admin  bool
	}{
		{OpProjectList, true, true, true},
		{OpProjectGet, true, true, true},
		{OpProjectCreate, false, true, true},
		{OpProjectUpdate, false, true, true},
		{OpProjectDelete, false, false, true},
		{OpTaskList, true, true, true},
		{OpTaskCreate, false, true, true},
		{OpTaskStatus, false, true, true},
		{OpTaskDelete, false, false, true},
		{OpCommentGet, true, true, true},
		{OpCommentUpdate, false, true, true},
		{OpCommentDelete, false, false, true},
		{OpUserList, false, false, true},
		{OpUserMe, true, true, true},
		{OpUserRole, false, false, true},
		{OpUserDelete, false, false, true},
		{OpHierarchyView, true, true, true},
		{OpStatsView, true, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			if got := Allowed(tt.op, model.RoleGuest); got != tt.guest {
				t.Errorf("GUEST: Allowed() = %v, want %v", got, tt.guest)
			}
			if got := Allowed(tt.op, model.RoleMember); got != tt.member {
				t.Errorf("MEMBER: Allowed() = %v, want %v", got, tt.member)
			}
			if got := Allowed(tt.op, model.RoleAdmin); got != tt.admin {
				t.Errorf("ADMIN: Allowed() = %v, want %v", got, tt.admin)
			}
		})
	}
}

func TestAllowed_UnknownDenied(t *testing.T) {
	if Allowed(Operation("project.archive"), model.RoleAdmin) {
		t.Error("unknown operation allowed for ADMIN")
	}
	if Allowed(OpProjectList, model.Role("")) {
		t.Error("empty role allowed to list projects")
	}
}

func TestAuthorize(t *testing.T) {
	guest := Identity{UserID: 1, Role: model.RoleGuest}
	if err := Authorize(OpProjectCreate, guest); !errors.Is(err, ErrForbidden) {
		t.Errorf("Authorize() error = %v, want ErrForbidden", err)
	}
	if err := Authorize(OpProjectList, guest); err != nil {
		t.Errorf("Authorize() error = %v, want nil", err)
	}
}

func TestOperations_AllAdminReachable(t *testing.T) {
	for _, op := range Operations() {
		if !Allowed(op, model.RoleAdmin) {
			t.Errorf("ADMIN denied %s", op)
		}
	}
}

func TestRolesFor(t *testing.T) {
	got := RolesFor(OpProjectUpdate)
	if len(got) != 2 || got[0] != model.RoleMember || got[1] != model.RoleAdmin {
		t.Errorf("RolesFor(project.update) = %v, want [MEMBER ADMIN]", got)
	}
	if got := RolesFor(Operation("nope")); len(got) != 0 {
		t.Errorf("RolesFor(unknown) = %v, want empty", got)
	}
}
