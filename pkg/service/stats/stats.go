// Package stats computes spending statistics over financial records.
package stats

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/repository"
)

// Service aggregates financial records for reporting.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a stats service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Statistics returns per-category totals for one month plus the grand total.
func (s *Service) Statistics(ctx context.Context, userID uuid.UUID, year, month int, t domain.CategoryType) (*dto.Statistics, error) {
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	sums, err := transactions.SumByCategory(ctx, userID, year, month, t)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, row := range sums {
		total = total.Add(row.Total)
	}
	return &dto.Statistics{
		Statistics:  sums,
		TotalAmount: total.InexactFloat64(),
	}, nil
}

// Analytics returns per-month totals across one year.
func (s *Service) Analytics(ctx context.Context, userID uuid.UUID, year int, t domain.CategoryType) ([]dto.MonthSum, error) {
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return transactions.SumByMonth(ctx, userID, year, t)
}
