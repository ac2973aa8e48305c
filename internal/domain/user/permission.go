package user

type Permission string

const (
	// Own attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"

	// Reports
	PermissionReportsViewOwn Permission = "reports.view_own"
	PermissionReportsViewAll Permission = "reports.view_all"

	// Dashboards
	PermissionDashboardViewOwn Permission = "dashboard.view_own"
	PermissionDashboardViewAll Permission = "dashboard.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionReportsViewOwn,
		PermissionReportsViewAll,
		PermissionDashboardViewOwn,
		PermissionDashboardViewAll,
	},
	RoleEmployee: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionReportsViewOwn,
		PermissionDashboardViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
