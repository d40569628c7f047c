// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/hours-tracker/internal/auth"
	"github.com/carterperez-dev/hours-tracker/internal/config"
	"github.com/carterperez-dev/hours-tracker/internal/core"
	"github.com/carterperez-dev/hours-tracker/internal/metrics"
	"github.com/carterperez-dev/hours-tracker/internal/policy"
)

// EntryPurger removes every time entry owned by a user.
type EntryPurger interface {
	DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error)
}

type Service struct {
	repo    Repository
	purger  EntryPurger
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(
	repo Repository,
	purger EntryPurger,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:    repo,
		purger:  purger,
		metrics: m,
		logger:  logger,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	role := req.Role
	if role == "" {
		role = policy.RoleEmployee
	}
	if !policy.ValidRole(role) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}
	if req.HourlyRate < 0 {
		return nil, fmt.Errorf(
			"create user: negative hourly rate: %w",
			core.ErrInvalidInput,
		)
	}

	hash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Position:     req.Position,
		HourlyRate:   req.HourlyRate,
		Role:         role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("create user: %w", auth.ErrEmailExists)
		}
		return nil, err
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	if err := core.CheckID("user", id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Exists reports whether a user with id is present.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetUser(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateUser applies the supplied fields. A new password is re-hashed and
// revokes tokens issued before the change.
func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return user, nil
	}

	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return nil, fmt.Errorf(
			"update user: negative hourly rate: %w",
			core.ErrInvalidInput,
		)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Position != nil {
		user.Position = *req.Position
	}
	if req.HourlyRate != nil {
		user.HourlyRate = *req.HourlyRate
	}

	var hash string
	if req.Password != nil {
		hash, err = core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := s.repo.Update(ctx, user, hash); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the user and then the user's time entries. The two
// steps are not atomic: if the purge fails the user stays deleted and the
// orphaned entries are logged.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	ctx, span := core.StartSpan(ctx, "user.DeleteUser",
		attribute.String("user.id", id),
	)
	defer span.End()

	if err := core.CheckID("user", id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			core.SetSpanError(ctx, err)
		}
		return err
	}
	core.AddSpanEvent(ctx, "user row deleted")

	purged, err := s.purger.DeleteAllForOwner(ctx, id)
	s.metrics.Cascade(purged, err)
	if err != nil {
		core.SetSpanError(ctx, err)
		s.logger.Error("time entry cascade failed, entries orphaned",
			"user_id", id,
			"error", err,
		)
		return nil
	}

	span.SetAttributes(attribute.Int64("time_entries.purged", purged))
	s.logger.Info("user deleted",
		"user_id", id,
		"time_entries_purged", purged,
	)

	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) CountByRole(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByRole(ctx)
}

// EnsureDefaultAdmin provisions the bootstrap admin when no user holds the
// configured email.
func (s *Service) EnsureDefaultAdmin(
	ctx context.Context,
	cfg config.BootstrapConfig,
) error {
	if !cfg.Enabled {
		return nil
	}

	exists, err := s.repo.ExistsByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if exists {
		return nil
	}

	name := cfg.AdminName
	if name == "" {
		name = "Administrator"
	}

	_, err = s.Create(ctx, CreateUserRequest{
		Email:      cfg.AdminEmail,
		Password:   cfg.AdminPassword,
		FullName:   name,
		Position:   name,
		HourlyRate: 0,
		Role:       policy.RoleAdmin,
	})
	if errors.Is(err, auth.ErrEmailExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	s.logger.Warn("default admin created, rotate its password",
		"email", cfg.AdminEmail,
	)

	return nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) RegisterUser(
	ctx context.Context,
	req auth.RegisterRequest,
) (*auth.UserInfo, error) {
	user, err := s.Create(ctx, CreateUserRequest{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Position:   req.Position,
		HourlyRate: req.HourlyRate,
		Role:       req.Role,
	})
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) RehashPassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.RehashPassword(ctx, userID, passwordHash)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Position:     u.Position,
		HourlyRate:   u.HourlyRate,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		TokenVersion: u.TokenVersion,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
