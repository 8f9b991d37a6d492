package user

type Permission string

const (
	// Attendance events
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Timesheets
	PermissionTimesheetView   Permission = "timesheet.view"
	PermissionTimesheetManage Permission = "timesheet.manage"

	// Analytic lines
	PermissionAnalyticView        Permission = "analytic.view"
	PermissionAnalyticRecalculate Permission = "analytic.recalculate"
	PermissionAnalyticScan        Permission = "analytic.scan"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionTimesheetView,
		PermissionTimesheetManage,
		PermissionAnalyticView,
		PermissionAnalyticRecalculate,
		PermissionAnalyticScan,
	},
	RoleManager: {
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionTimesheetView,
		PermissionTimesheetManage,
		PermissionAnalyticView,
		PermissionAnalyticRecalculate,
	},
	RoleEmployee: {
		PermissionAttendanceCreate,
		PermissionTimesheetView,
		PermissionAnalyticView,
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
