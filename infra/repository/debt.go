package repository

import (
	"context"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	repo "github.com/finbook/finbook/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository creates a debt repository on the given session.
func NewDebtRepository(db *gorm.DB) repo.DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) Create(ctx context.Context, transferID uuid.UUID, description string) error {
	debt := Debt{
		ID:                  uuid.New(),
		TransferID:          transferID,
		BorrowerDescription: description,
	}
	return r.db.WithContext(ctx).Create(&debt).Error
}

func (r *debtRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Debt, error) {
	var debt Debt
	err := r.db.WithContext(ctx).First(&debt, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrDebtNotFound)
	}
	return &domain.Debt{
		ID:                  debt.ID,
		TransferID:          debt.TransferID,
		BorrowerDescription: debt.BorrowerDescription,
		CreatedAt:           debt.CreatedAt,
		UpdatedAt:           debt.UpdatedAt,
	}, nil
}

func (r *debtRepository) GetByTransfer(ctx context.Context, transferID uuid.UUID) (*domain.Debt, error) {
	var debt Debt
	err := r.db.WithContext(ctx).First(&debt, "transfer_id = ?", transferID).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrDebtNotFound)
	}
	return &domain.Debt{
		ID:                  debt.ID,
		TransferID:          debt.TransferID,
		BorrowerDescription: debt.BorrowerDescription,
		CreatedAt:           debt.CreatedAt,
		UpdatedAt:           debt.UpdatedAt,
	}, nil
}

func (r *debtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Debt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDebtNotFound
	}
	return nil
}

func (r *debtRepository) ListByUser(ctx context.Context, userID uuid.UUID, kind domain.DebtKind, page dto.Page) ([]dto.DebtRead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Debt{}).
		Joins("JOIN transfers ON transfers.id = debts.transfer_id").
		Joins("JOIN accounts src ON src.id = transfers.source_account_id").
		Joins("JOIN accounts dst ON dst.id = transfers.destination_account_id").
		Where("src.user_id = ?", userID)
	if kind != "" {
		q = q.Where("dst.name = ?", kind.SystemAccountName())
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var rows []dto.DebtRead
	err := q.
		Select(`debts.id, debts.transfer_id, debts.borrower_description,
			transfers.amount, src.name AS account_name, dst.name AS kind,
			transfers.timestamp`).
		Order("transfers.timestamp DESC").
		Offset(page.Offset()).Limit(page.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}
