package enums

import "fmt"

// TeamRole identifies the operational role a team member performs.
type TeamRole string

const (
	TeamRoleCleaner         TeamRole = "cleaner"
	TeamRoleMaintenance     TeamRole = "maintenance"
	TeamRolePropertyManager TeamRole = "property_manager"
	TeamRoleAdmin           TeamRole = "admin"
	TeamRoleInspector       TeamRole = "inspector"
)

var validTeamRoles = []TeamRole{
	TeamRoleCleaner,
	TeamRoleMaintenance,
	TeamRolePropertyManager,
	TeamRoleAdmin,
	TeamRoleInspector,
}

// String implements fmt.Stringer.
func (r TeamRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known TeamRole.
func (r TeamRole) IsValid() bool {
	for _, candidate := range validTeamRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseTeamRole converts raw input into a TeamRole.
func ParseTeamRole(value string) (TeamRole, error) {
	for _, candidate := range validTeamRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid team role %q", value)
}

// ScheduleStatus tracks a shift assignment through its lifecycle.
type ScheduleStatus string

const (
	ScheduleStatusScheduled  ScheduleStatus = "scheduled"
	ScheduleStatusInProgress ScheduleStatus = "in-progress"
	ScheduleStatusCompleted  ScheduleStatus = "completed"
	ScheduleStatusCancelled  ScheduleStatus = "cancelled"
)

var validScheduleStatuses = []ScheduleStatus{
	ScheduleStatusScheduled,
	ScheduleStatusInProgress,
	ScheduleStatusCompleted,
	ScheduleStatusCancelled,
}

// String implements fmt.Stringer.
func (s ScheduleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ScheduleStatus.
func (s ScheduleStatus) IsValid() bool {
	for _, candidate := range validScheduleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScheduleStatus converts raw input into a ScheduleStatus.
func ParseScheduleStatus(value string) (ScheduleStatus, error) {
	for _, candidate := range validScheduleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule status %q", value)
}
