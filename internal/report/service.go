// AngelaMos | 2026
// service.go

package report

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/hours-tracker/internal/core"
	"github.com/carterperez-dev/hours-tracker/internal/metrics"
	"github.com/carterperez-dev/hours-tracker/internal/policy"
	"github.com/carterperez-dev/hours-tracker/internal/user"
)

// UserLister returns users in creation order.
type UserLister interface {
	ListUsers(ctx context.Context) ([]user.User, error)
}

type HoursSummer interface {
	SumHoursByOwner(ctx context.Context) (map[string]float64, error)
}

type Service struct {
	users   UserLister
	hours   HoursSummer
	metrics *metrics.Metrics
}

func NewService(
	users UserLister,
	hours HoursSummer,
	m *metrics.Metrics,
) *Service {
	return &Service{
		users:   users,
		hours:   hours,
		metrics: m,
	}
}

// BuildSalaryReport computes one row per user from live data. Users
// without entries get zero hours and zero salary; entries whose owner no
// longer exists are ignored.
func (s *Service) BuildSalaryReport(
	ctx context.Context,
	caller policy.Caller,
) ([]SalaryRow, error) {
	if err := policy.Authorize(caller, policy.ActionSalaryReport, ""); err != nil {
		return nil, fmt.Errorf("salary report: %w", err)
	}

	ctx, span := core.StartSpan(ctx, "report.BuildSalaryReport")
	defer span.End()

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("salary report: %w", err)
	}

	totals, err := s.hours.SumHoursByOwner(ctx)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("salary report: %w", err)
	}

	rows := make([]SalaryRow, 0, len(users))
	for _, u := range users {
		h := totals[u.ID]
		rows = append(rows, SalaryRow{
			UserID:      u.ID,
			UserName:    u.FullName,
			Position:    u.Position,
			HourlyRate:  u.HourlyRate,
			TotalHours:  h,
			TotalSalary: h * u.HourlyRate,
		})
	}

	span.SetAttributes(attribute.Int("report.rows", len(rows)))
	s.metrics.ReportBuilt()

	return rows, nil
}
