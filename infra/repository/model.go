package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:50;not null;uniqueIndex"`
	Email        string    `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// Account represents an account record in the database. Balance is the
// authoritative running total, stored as decimal(10,2).
type Account struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID       `gorm:"type:uuid;index;not null;uniqueIndex:idx_accounts_user_name"`
	User    User            `gorm:"constraint:OnDelete:CASCADE"`
	Name    string          `gorm:"size:50;not null;uniqueIndex:idx_accounts_user_name"`
	Balance decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	// No column defaults: gorm would skip explicit false values on create.
	IsActive        bool `gorm:"not null"`
	IsSystemAccount bool `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// Category represents a category record in the database, unique per
// (user, name, type).
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_categories_user_name_type"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_categories_user_name_type"`
	Type      string    `gorm:"size:20;not null;uniqueIndex:idx_categories_user_name_type"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string { return "categories" }

// Transaction represents a financial record in the database.
type Transaction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	User       User            `gorm:"constraint:OnDelete:CASCADE"`
	CategoryID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Category   Category        `gorm:"constraint:OnDelete:CASCADE"`
	AccountID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Account    Account         `gorm:"constraint:OnDelete:CASCADE"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OccurredAt time.Time       `gorm:"index;not null"`
	Comment    string          `gorm:"size:200"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// Transfer represents a transfer record in the database. Negative amounts
// are internal repayment rows created by the debt subsystem.
type Transfer struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SourceAccountID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	SourceAccount        Account         `gorm:"foreignKey:SourceAccountID;constraint:OnDelete:CASCADE"`
	DestinationAccountID uuid.UUID       `gorm:"type:uuid;index;not null"`
	DestinationAccount   Account         `gorm:"foreignKey:DestinationAccountID;constraint:OnDelete:CASCADE"`
	Amount               decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Timestamp            time.Time       `gorm:"index;not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the table name for the Transfer model.
func (Transfer) TableName() string { return "transfers" }

// Debt represents a debt annotation on a transfer.
type Debt struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Transfer            Transfer  `gorm:"constraint:OnDelete:CASCADE"`
	BorrowerDescription string    `gorm:"size:100;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for the Debt model.
func (Debt) TableName() string { return "debts" }

// Models lists every model for AutoMigrate.
func Models() []any {
	return []any{&User{}, &Account{}, &Category{}, &Transaction{}, &Transfer{}, &Debt{}}
}
