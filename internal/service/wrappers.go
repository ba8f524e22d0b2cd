package service

// TransactionServiceWrapper decorates a TransactionService, e.g. with
// input validation.
type TransactionServiceWrapper interface {
	Wrap(TransactionService) TransactionService
}

// AuthServiceWrapper decorates an AuthService.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// UserServiceWrapper decorates a UserService.
type UserServiceWrapper interface {
	Wrap(UserService) UserService
}
