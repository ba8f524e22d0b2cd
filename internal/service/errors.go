package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("wrong password")
	ErrUserInactive       = errors.New("user is inactive")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrAdminOnly        = errors.New("admin role required")
	ErrSelfModification = errors.New("admins cannot deactivate or demote themselves")

	ErrInvalidPeriod = errors.New("period must have the form YYYY-MM")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
