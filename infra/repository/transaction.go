package repository

import (
	"context"
	"sort"
	"time"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/money"
	repo "github.com/finbook/finbook/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a financial-record repository on the
// given session.
func NewTransactionRepository(db *gorm.DB) repo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	tx := Transaction{
		ID:         create.ID,
		UserID:     create.UserID,
		CategoryID: create.CategoryID,
		AccountID:  create.AccountID,
		Amount:     create.Amount.Decimal(),
		OccurredAt: create.OccurredAt,
		Comment:    create.Comment,
	}
	return r.db.WithContext(ctx).Create(&tx).Error
}

func (r *transactionRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	return r.get(r.db.WithContext(ctx), userID, id)
}

// GetForUpdate locks the record row for the rest of the transaction on
// backends with row locks.
func (r *transactionRepository) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	db := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.get(db, userID, id)
}

func (r *transactionRepository) get(db *gorm.DB, userID, id uuid.UUID) (*domain.Transaction, error) {
	var tx Transaction
	err := db.First(&tx, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrTransactionNotFound)
	}
	amount, err := money.FromDecimal(tx.Amount)
	if err != nil {
		return nil, err
	}
	return &domain.Transaction{
		ID:         tx.ID,
		UserID:     tx.UserID,
		CategoryID: tx.CategoryID,
		AccountID:  tx.AccountID,
		Amount:     amount,
		OccurredAt: tx.OccurredAt,
		Comment:    tx.Comment,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
	}, nil
}

func (r *transactionRepository) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	updates := make(map[string]any)
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.AccountID != nil {
		updates["account_id"] = *update.AccountID
	}
	if update.Amount != nil {
		updates["amount"] = update.Amount.Decimal()
	}
	if update.OccurredAt != nil {
		updates["occurred_at"] = *update.OccurredAt
	}
	if update.Comment != nil {
		updates["comment"] = *update.Comment
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter, page dto.Page) ([]dto.TransactionRead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Transaction{}).
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("transactions.user_id = ?", userID)

	if filter.Type != "" {
		q = q.Where("categories.type = ?", string(filter.Type))
	}
	if filter.From != nil {
		q = q.Where("transactions.occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("transactions.occurred_at <= ?", *filter.To)
	}
	if filter.AccountName != "" {
		q = q.Where("accounts.name LIKE ?", "%"+filter.AccountName+"%")
	}
	if filter.CategoryName != "" {
		q = q.Where("categories.name LIKE ?", "%"+filter.CategoryName+"%")
	}
	if filter.AmountMin != nil {
		q = q.Where("transactions.amount >= ?", filter.AmountMin.Decimal())
	}
	if filter.AmountMax != nil {
		q = q.Where("transactions.amount <= ?", filter.AmountMax.Decimal())
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var rows []dto.TransactionRead
	err := q.
		Select(`transactions.id, transactions.amount,
			transactions.category_id, categories.name AS category_name, categories.type AS category_type,
			transactions.account_id, accounts.name AS account_name,
			transactions.occurred_at, transactions.comment`).
		Order("transactions.occurred_at DESC, transactions.amount DESC, categories.name ASC").
		Offset(page.Offset()).Limit(page.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}

// monthRange bounds [start, end) for a calendar month in UTC.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

type sumRow struct {
	Name       string
	Amount     decimal.Decimal
	OccurredAt time.Time
}

// SumByCategory aggregates in Go rather than SQL so the sums stay
// decimal-exact on every backend.
func (r *transactionRepository) SumByCategory(ctx context.Context, userID uuid.UUID, year, month int, t domain.CategoryType) ([]dto.CategorySum, error) {
	start, end := monthRange(year, month)
	var rows []sumRow
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Select("categories.name AS name, transactions.amount AS amount").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND categories.type = ?", userID, string(t)).
		Where("transactions.occurred_at >= ? AND transactions.occurred_at < ?", start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		totals[row.Name] = totals[row.Name].Add(row.Amount)
	}
	sums := make([]dto.CategorySum, 0, len(totals))
	for name, total := range totals {
		sums = append(sums, dto.CategorySum{
			CategoryName: name,
			Total:        total,
			TotalAmount:  total.InexactFloat64(),
		})
	}
	sort.Slice(sums, func(i, j int) bool {
		if !sums[i].Total.Equal(sums[j].Total) {
			return sums[j].Total.LessThan(sums[i].Total)
		}
		return sums[i].CategoryName < sums[j].CategoryName
	})
	return sums, nil
}

func (r *transactionRepository) SumByMonth(ctx context.Context, userID uuid.UUID, year int, t domain.CategoryType) ([]dto.MonthSum, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	var rows []sumRow
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Select("transactions.amount AS amount, transactions.occurred_at AS occurred_at").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND categories.type = ?", userID, string(t)).
		Where("transactions.occurred_at >= ? AND transactions.occurred_at < ?", start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[int]decimal.Decimal)
	for _, row := range rows {
		m := int(row.OccurredAt.UTC().Month())
		totals[m] = totals[m].Add(row.Amount)
	}
	sums := make([]dto.MonthSum, 0, len(totals))
	for m, total := range totals {
		sums = append(sums, dto.MonthSum{
			Month:       m,
			Total:       total,
			TotalAmount: total.InexactFloat64(),
		})
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].Month < sums[j].Month })
	return sums, nil
}
