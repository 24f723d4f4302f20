package domain

import "time"

// ActivityType enumerates the auditable actions recorded in the activity log.
type ActivityType string

const (
	ActivityUserLogin       ActivityType = "USER_LOGIN"
	ActivityUserLogout      ActivityType = "USER_LOGOUT"
	ActivityUserRegister    ActivityType = "USER_REGISTER"
	ActivityUserCreated     ActivityType = "USER_CREATED"
	ActivityUserUpdated     ActivityType = "USER_UPDATED"
	ActivityUserDeleted     ActivityType = "USER_DELETED"
	ActivityUserSuspended   ActivityType = "USER_SUSPENDED"
	ActivityUserActivated   ActivityType = "USER_ACTIVATED"
	ActivityRoleChanged     ActivityType = "ROLE_CHANGED"
	ActivityPasswordChanged ActivityType = "PASSWORD_CHANGED"
	ActivityPasswordReset   ActivityType = "PASSWORD_RESET"
	ActivityEmailVerified   ActivityType = "EMAIL_VERIFIED"
	ActivityProfileUpdated  ActivityType = "PROFILE_UPDATED"
)

func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityUserLogin, ActivityUserLogout, ActivityUserRegister,
		ActivityUserCreated, ActivityUserUpdated, ActivityUserDeleted,
		ActivityUserSuspended, ActivityUserActivated, ActivityRoleChanged,
		ActivityPasswordChanged, ActivityPasswordReset,
		ActivityEmailVerified, ActivityProfileUpdated:
		return true
	}
	return false
}

// ActivityLog is an append-only audit record. Entries are never updated
// once written; only age-based cleanup removes them.
type ActivityLog struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user"`
	ActivityType ActivityType   `json:"activityType"`
	Description  string         `json:"description"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	TargetUserID string         `json:"targetUser,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
