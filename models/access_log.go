package models

import "time"

// AccessAction names an audited identity or administrative action.
type AccessAction string

const (
	ActionLogin          AccessAction = "LOGIN"
	ActionPasswordChange AccessAction = "PASSWORD_CHANGE"
	ActionStatusChange   AccessAction = "STATUS_CHANGE"
	ActionRoleChange     AccessAction = "ROLE_CHANGE"
	ActionGroupChange    AccessAction = "GROUP_CHANGE"
	ActionUserCreated    AccessAction = "USER_CREATED"
)

// AccessLog is one row of the append-only audit trail.
type AccessLog struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Action      AccessAction `json:"action"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NewAccessLog builds an audit entry stamped with the current time.
func NewAccessLog(userID int64, action AccessAction, description string) AccessLog {
	return AccessLog{
		UserID:      userID,
		Action:      action,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}
