// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/hours-tracker/internal/core"
	"github.com/carterperez-dev/hours-tracker/internal/metrics"
	"github.com/carterperez-dev/hours-tracker/internal/middleware"
	"github.com/carterperez-dev/hours-tracker/internal/policy"
)

const tokenTypeBearer = "bearer"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

// UserInfo is the credential record auth needs. PasswordHash never leaves
// this package.
type UserInfo struct {
	ID           string
	Email        string
	FullName     string
	Position     string
	HourlyRate   float64
	Role         string
	PasswordHash string
	TokenVersion int
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	RegisterUser(ctx context.Context, req RegisterRequest) (*UserInfo, error)
	// RehashPassword stores an upgraded hash without revoking tokens.
	RehashPassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	jwt       *JWTManager
	users     UserProvider
	blacklist Blacklist
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(
	jwt *JWTManager,
	users UserProvider,
	blacklist Blacklist,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		jwt:       jwt,
		users:     users,
		blacklist: blacklist,
		metrics:   m,
		logger:    logger,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			s.metrics.Login("invalid_credentials")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		s.metrics.Login("invalid_credentials")
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.users.RehashPassword(ctx, user.ID, newHash); err != nil {
			s.logger.Warn("password rehash failed",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	token, expiresAt, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID:       user.ID,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	s.metrics.Login("success")

	return &LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt.UTC(),
		User:        toUserResponse(user),
	}, nil
}

// Register creates a user on behalf of an admin or supervisor.
func (s *Service) Register(
	ctx context.Context,
	caller policy.Caller,
	req RegisterRequest,
) (*UserResponse, error) {
	if err := policy.Authorize(caller, policy.ActionRegisterUser, ""); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.users.RegisterUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// VerifyAccessToken checks signature and expiry and counts rejections.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, core.ErrTokenExpired) {
			s.metrics.AuthFailure("expired")
		} else {
			s.metrics.AuthFailure("invalid")
		}
		return nil, err
	}
	return claims, nil
}

// ResolveIdentity loads the token's subject and rejects it when the user
// was deleted, changed password after issuance, or logged the token out.
func (s *Service) ResolveIdentity(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) (policy.Caller, error) {
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			s.metrics.AuthFailure("unknown_user")
			return policy.Caller{}, fmt.Errorf(
				"resolve identity: %w",
				core.ErrUnauthorized,
			)
		}
		return policy.Caller{}, fmt.Errorf("resolve identity: %w", err)
	}

	if claims.TokenVersion < user.TokenVersion {
		s.metrics.AuthFailure("revoked")
		return policy.Caller{}, fmt.Errorf(
			"resolve identity: %w",
			core.ErrTokenRevoked,
		)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.logger.Warn("token blacklist unavailable",
			"error", err,
			"user_id", user.ID,
		)
	} else if revoked {
		s.metrics.AuthFailure("revoked")
		return policy.Caller{}, fmt.Errorf(
			"resolve identity: %w",
			core.ErrTokenRevoked,
		)
	}

	return policy.Caller{ID: user.ID, Role: user.Role}, nil
}

func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if claims == nil {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}

	if err := s.blacklist.Revoke(
		ctx,
		claims.TokenID,
		time.Unix(claims.ExpiresAt, 0),
	); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}
