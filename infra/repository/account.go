package repository

import (
	"context"
	"errors"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/money"
	repo "github.com/finbook/finbook/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates an account repository on the given session.
func NewAccountRepository(db *gorm.DB) repo.AccountRepository {
	return &accountRepository{db: db}
}

// locked applies row locking on backends that support it. sqlite, used in
// tests, serializes writers anyway.
func (r *accountRepository) locked(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func (r *accountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	acct := Account{
		ID:              create.ID,
		UserID:          create.UserID,
		Name:            create.Name,
		Balance:         create.Balance.Decimal(),
		IsActive:        create.IsActive,
		IsSystemAccount: create.IsSystemAccount,
	}
	err := r.db.WithContext(ctx).Create(&acct).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *accountRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	var acct Account
	err := r.db.WithContext(ctx).
		First(&acct, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrAccountNotFound)
	}
	return mapAccount(&acct)
}

func (r *accountRepository) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	var acct Account
	err := r.locked(ctx).
		First(&acct, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrAccountNotFound)
	}
	return mapAccount(&acct)
}

func (r *accountRepository) GetOrCreateSystem(ctx context.Context, userID uuid.UUID, name string) (*domain.Account, error) {
	var acct Account
	err := r.db.WithContext(ctx).
		First(&acct, "user_id = ? AND name = ?", userID, name).Error
	if err == nil {
		return mapAccount(&acct)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	acct = Account{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Balance:         decimal.Zero,
		IsActive:        false,
		IsSystemAccount: true,
	}
	if err := r.db.WithContext(ctx).Create(&acct).Error; err != nil {
		// Lost a race against a concurrent create; the unique index on
		// (user_id, name) guarantees a single winner.
		if isUniqueViolation(err) {
			var winner Account
			if err := r.db.WithContext(ctx).
				First(&winner, "user_id = ? AND name = ? AND is_system_account = ?", userID, name, true).Error; err != nil {
				return nil, translateNotFound(err, domain.ErrAccountNotFound)
			}
			return mapAccount(&winner)
		}
		return nil, err
	}
	return mapAccount(&acct)
}

func (r *accountRepository) SaveBalance(ctx context.Context, id uuid.UUID, balance money.Money) error {
	return r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ?", id).
		Update("balance", balance.Decimal()).Error
}

func (r *accountRepository) Update(ctx context.Context, userID, id uuid.UUID, update dto.AccountUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Balance != nil {
		updates["balance"] = update.Balance.Decimal()
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrDuplicateName
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Account{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID, page dto.Page) ([]*domain.Account, int64, error) {
	q := r.db.WithContext(ctx).Model(&Account{}).
		Where("user_id = ? AND is_system_account = ?", userID, false)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var accts []Account
	err := q.Order("balance DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&accts).Error
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Account, 0, len(accts))
	for i := range accts {
		a, err := mapAccount(&accts[i])
		if err != nil {
			return nil, 0, err
		}
		result = append(result, a)
	}
	return result, count, nil
}

func (r *accountRepository) TotalActiveBalance(ctx context.Context, userID uuid.UUID) (money.Money, error) {
	var rows []Account
	err := r.db.WithContext(ctx).
		Select("balance").
		Where("user_id = ? AND is_active = ? AND is_system_account = ?", userID, true, false).
		Find(&rows).Error
	if err != nil {
		return money.Zero, err
	}
	total := decimal.Zero
	for i := range rows {
		total = total.Add(rows[i].Balance)
	}
	return money.FromDecimal(total)
}

func mapAccount(a *Account) (*domain.Account, error) {
	balance, err := money.FromDecimal(a.Balance)
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:              a.ID,
		UserID:          a.UserID,
		Name:            a.Name,
		Balance:         balance,
		IsActive:        a.IsActive,
		IsSystemAccount: a.IsSystemAccount,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}, nil
}
