package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"memberdesk/internal/auth"
	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/repository"
)

// AuthService resolves login identifiers to member records and manages
// session tokens.
type AuthService interface {
	// Authenticate matches identifier (email or countryCode+phone) and
	// credential against the collection. Nil with no error means no match.
	Authenticate(ctx context.Context, identifier, password string) (*model.User, error)
	// ResolveIdentity performs the same lookup without a credential check,
	// for the password-reset flow.
	ResolveIdentity(ctx context.Context, identifier string) (*model.User, error)
	// Login authenticates and status-gates the record before issuing tokens.
	Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	// ResetPassword re-hashes the credential of the record matching identifier.
	ResetPassword(ctx context.Context, identifier, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// matchIdentifier reports whether u is addressed by the normalized
// identifier, either by email (case-insensitive) or by the phone key.
func matchIdentifier(u *model.User, identifier string) bool {
	if strings.EqualFold(u.Email, identifier) {
		return true
	}
	return PhoneKey(u.CountryCode, u.PhoneNumber) == stripSpace(identifier)
}

func (s *authService) ResolveIdentity(ctx context.Context, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	for i := range users {
		if matchIdentifier(&users[i], identifier) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *authService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	user, err := s.ResolveIdentity(ctx, identifier)
	if err != nil || user == nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

// Login authenticates and gates on status: only active records get a
// session. Pending and rejected are distinct, user-visible outcomes.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, string, *model.User, error) {
	user, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return "", "", nil, err
	}
	if user == nil {
		return "", "", nil, errors.ErrInvalidCredentials
	}

	switch user.Status {
	case model.StatusPending:
		return "", "", nil, errors.ErrAccountPending
	case model.StatusRejected:
		return "", "", nil, errors.ErrAccountRejected
	case model.StatusDeactive:
		return "", "", nil, errors.ErrAccountDeactivated
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", errors.ErrInvalidRefreshToken
	}

	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", errors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return errors.ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// ResetPassword resolves the identifier and replaces the stored hash.
func (s *authService) ResetPassword(ctx context.Context, identifier, newPassword string) error {
	user, err := s.ResolveIdentity(ctx, identifier)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	return nil
}
