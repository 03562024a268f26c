package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/AdamZoda/voiture/internal/auth"
	"github.com/AdamZoda/voiture/internal/model"
	"github.com/AdamZoda/voiture/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authService implements AuthService on top of the user repository.
// Sessions are stateless tokens: sign-out is the client discarding its
// cookie, and deleting a user revokes sign-in while any outstanding
// token lapses at its expiry.
type authService struct {
	userRepo  repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// SignIn verifies credentials and returns the user plus a session token.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *authService) SignIn(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user for sign-in")
		return nil, "", fmt.Errorf("failed to sign in: %w", err)
	}

	if user == nil {
		s.logger.Warn().Str("email", email).Msg("sign-in for unknown email")
		return nil, "", model.ErrInvalidCredentials
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Warn().Str("user_id", user.ID).Msg("sign-in with wrong password")
		return nil, "", model.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to issue session token")
		return nil, "", fmt.Errorf("failed to sign in: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")

	return user, token, nil
}

// SignUp creates a new admin account.
func (s *authService) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, model.Validation("Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, model.Validation("Email must be a valid address")
	}
	if password == "" {
		return nil, model.Validation("Password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, model.Validation("Password must be 72 bytes or fewer")
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", email).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", email).Msg("user created")

	return user, nil
}

// CurrentUser resolves a session token to a user, or nil when the token
// is missing, invalid, expired or points at a deleted account.
func (s *authService) CurrentUser(ctx context.Context, token string) *model.User {
	if token == "" {
		return nil
	}

	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load session user")
		return nil
	}

	return user
}

// ListUsers retrieves all admin accounts, newest first.
func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// DeleteUser removes an admin account through the identity store, so
// the deleted user can no longer sign in. The signed-in actor cannot
// delete itself.
func (s *authService) DeleteUser(ctx context.Context, actorID, id string) error {
	if id == "" {
		return model.ErrUserNotFound
	}
	if actorID != "" && actorID == id {
		return model.NewDomainError(model.ErrCodeForbidden, "Cannot delete the account you are signed in with")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Str("actor_id", actorID).Msg("user deleted")

	return nil
}
