// AngelaMos | 2026
// service.go

package timeentry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/hours-tracker/internal/core"
	"github.com/carterperez-dev/hours-tracker/internal/metrics"
	"github.com/carterperez-dev/hours-tracker/internal/policy"
)

// OwnerChecker confirms a user exists before entries are attached to it.
type OwnerChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo    Repository
	owners  OwnerChecker
	metrics *metrics.Metrics
}

func NewService(
	repo Repository,
	owners OwnerChecker,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:    repo,
		owners:  owners,
		metrics: m,
	}
}

// SetOwnerChecker breaks the construction cycle with the user service,
// which in turn purges entries through this service.
func (s *Service) SetOwnerChecker(owners OwnerChecker) {
	s.owners = owners
}

func (s *Service) Create(
	ctx context.Context,
	caller policy.Caller,
	req CreateEntryRequest,
) (*Entry, error) {
	if err := policy.Authorize(caller, policy.ActionCreateEntry, caller.ID); err != nil {
		return nil, fmt.Errorf("create time entry: %w", err)
	}

	workDate, err := ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf(
			"create time entry: date %q: %w",
			req.Date,
			core.ErrInvalidInput,
		)
	}

	if req.Hours == nil || *req.Hours < 0 {
		return nil, fmt.Errorf(
			"create time entry: hours must be non-negative: %w",
			core.ErrInvalidInput,
		)
	}

	if s.owners != nil {
		exists, err := s.owners.Exists(ctx, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("create time entry: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf(
				"create time entry: owner %s: %w",
				caller.ID,
				core.ErrUnauthorized,
			)
		}
	}

	entry := &Entry{
		ID:          uuid.New().String(),
		UserID:      caller.ID,
		WorkDate:    workDate,
		Hours:       *req.Hours,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.EntryWrite("create")

	return entry, nil
}

// List returns every entry for admins and only the caller's own entries
// for everyone else.
func (s *Service) List(
	ctx context.Context,
	caller policy.Caller,
) ([]Entry, error) {
	if err := policy.Authorize(caller, policy.ActionListEntries, caller.ID); err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	return s.repo.List(ctx, policy.EntryScope(caller))
}

// Update loads the entry before authorizing, so a missing entry reports
// not found and another user's entry reports forbidden.
func (s *Service) Update(
	ctx context.Context,
	caller policy.Caller,
	id string,
	req UpdateEntryRequest,
) (*Entry, error) {
	if err := core.CheckID("time entry", id); err != nil {
		return nil, err
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(caller, policy.ActionUpdateEntry, entry.UserID); err != nil {
		return nil, fmt.Errorf("update time entry: %w", err)
	}

	if req.IsEmpty() {
		return entry, nil
	}

	if req.Date != nil {
		workDate, err := ParseDate(*req.Date)
		if err != nil {
			return nil, fmt.Errorf(
				"update time entry: date %q: %w",
				*req.Date,
				core.ErrInvalidInput,
			)
		}
		entry.WorkDate = workDate
	}

	if req.Hours != nil {
		if *req.Hours < 0 {
			return nil, fmt.Errorf(
				"update time entry: hours must be non-negative: %w",
				core.ErrInvalidInput,
			)
		}
		entry.Hours = *req.Hours
	}

	if req.Description != nil {
		entry.Description = req.Description
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.EntryWrite("update")

	return entry, nil
}

func (s *Service) Delete(
	ctx context.Context,
	caller policy.Caller,
	id string,
) error {
	if err := core.CheckID("time entry", id); err != nil {
		return err
	}

	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := policy.Authorize(caller, policy.ActionDeleteEntry, entry.UserID); err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.EntryWrite("delete")

	return nil
}

func (s *Service) DeleteAllForOwner(
	ctx context.Context,
	ownerID string,
) (int64, error) {
	return s.repo.DeleteAllForOwner(ctx, ownerID)
}

func (s *Service) SumHoursByOwner(
	ctx context.Context,
) (map[string]float64, error) {
	return s.repo.SumHoursByOwner(ctx)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
