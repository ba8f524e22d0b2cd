package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/utils"
	"github.com/MKhiriev/go-family-finance/models"
)

// authService is the concrete implementation of AuthService.
// Passwords are stored as bcrypt hashes and sessions are stateless JWTs.
type authService struct {
	// userRepository looks users up and records logins and password changes.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and token parameters from cfg.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login authenticates an active user, stamps the last login time and
// writes the LOGIN audit row.
//
// Returns:
//   - ErrInvalidCredentials if the user does not exist or the password
//     does not match; the two cases are not told apart.
//   - ErrUserInactive if the account has been deactivated.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByUsername(ctx, credentials.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("username", credentials.Username).Msg("login attempt for unknown user")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, credentials.Password) {
		log.Warn().Int64("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	if !user.Active {
		log.Warn().Int64("user_id", user.ID).Msg("login attempt for inactive user")
		return models.User{}, ErrUserInactive
	}

	audit := models.NewAccessLog(user.ID, models.ActionLogin, "user logged in")
	if err = a.userRepository.TouchLastLogin(ctx, user.ID, audit); err != nil {
		return models.User{}, fmt.Errorf("failed to record login: %w", err)
	}
	now := audit.CreatedAt
	user.LastLoginAt = &now

	return user, nil
}

// CreateToken issues a signed JWT whose subject is the user id.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT. Any failure (expired, wrong issuer,
// malformed, bad signature) is reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// CurrentUser loads the user a token belongs to.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	return a.userRepository.FindByID(ctx, userID)
}

// ChangePassword replaces the caller's password after checking the current
// one and records PASSWORD_CHANGE.
func (a *authService) ChangePassword(ctx context.Context, uc models.UserContext, change models.PasswordChange) error {
	user, err := a.userRepository.FindByID(ctx, uc.ID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, change.CurrentPassword) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(change.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	audit := models.NewAccessLog(user.ID, models.ActionPasswordChange, "password changed")
	return a.userRepository.SetPasswordHash(ctx, user.ID, hash, audit)
}
