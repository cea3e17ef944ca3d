package repository

import (
	"context"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/money"
	repo "github.com/finbook/finbook/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a transfer repository on the given session.
func NewTransferRepository(db *gorm.DB) repo.TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, create dto.TransferCreate) error {
	tr := Transfer{
		ID:                   create.ID,
		SourceAccountID:      create.SourceAccountID,
		DestinationAccountID: create.DestinationAccountID,
		Amount:               create.Amount.Decimal(),
		Timestamp:            create.Timestamp,
	}
	return r.db.WithContext(ctx).Create(&tr).Error
}

func (r *transferRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transfer, error) {
	return r.get(r.db.WithContext(ctx), userID, id)
}

// GetForUpdate locks the transfer row only. The joined account rows stay
// unlocked; callers lock those through the account repository in pair order.
func (r *transferRepository) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Transfer, error) {
	db := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "transfers"}})
	}
	return r.get(db, userID, id)
}

func (r *transferRepository) get(db *gorm.DB, userID, id uuid.UUID) (*domain.Transfer, error) {
	var tr Transfer
	err := db.
		Joins("JOIN accounts src ON src.id = transfers.source_account_id").
		Joins("JOIN accounts dst ON dst.id = transfers.destination_account_id").
		Where("transfers.id = ? AND (src.user_id = ? OR dst.user_id = ?)", id, userID, userID).
		First(&tr).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrTransferNotFound)
	}
	amount, err := money.FromDecimal(tr.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.Transfer{
		ID:                   tr.ID,
		SourceAccountID:      tr.SourceAccountID,
		DestinationAccountID: tr.DestinationAccountID,
		Amount:               amount,
		Timestamp:            tr.Timestamp,
		CreatedAt:            tr.CreatedAt,
		UpdatedAt:            tr.UpdatedAt,
	}, nil
}

func (r *transferRepository) SaveAmount(ctx context.Context, id uuid.UUID, amount money.Money) error {
	res := r.db.WithContext(ctx).Model(&Transfer{}).
		Where("id = ?", id).
		Update("amount", amount.Decimal())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransferNotFound
	}
	return nil
}

func (r *transferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Transfer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransferNotFound
	}
	return nil
}

func (r *transferRepository) ListByUser(ctx context.Context, userID uuid.UUID, page dto.Page) ([]dto.TransferRead, int64, error) {
	// Debt bookkeeping rows go through system accounts and are hidden from
	// the user-facing history.
	q := r.db.WithContext(ctx).Model(&Transfer{}).
		Joins("JOIN accounts src ON src.id = transfers.source_account_id").
		Joins("JOIN accounts dst ON dst.id = transfers.destination_account_id").
		Where("(src.user_id = ? OR dst.user_id = ?)", userID, userID).
		Where("src.is_system_account = ? AND dst.is_system_account = ?", false, false)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var rows []dto.TransferRead
	err := q.
		Select(`transfers.id,
			transfers.source_account_id AS source_account_id, src.name AS source_account_name,
			transfers.destination_account_id AS destination_account_id, dst.name AS destination_account_name,
			transfers.amount, transfers.timestamp`).
		Order("transfers.timestamp DESC").
		Offset(page.Offset()).Limit(page.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}
