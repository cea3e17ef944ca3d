package repository

import (
	"context"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/google/uuid"
)

// LockAccountPair locks two account rows for update in a stable order so
// that concurrent transactions touching the same pair cannot deadlock.
// Accounts are returned in argument order regardless of lock order.
func LockAccountPair(ctx context.Context, accounts AccountRepository, userID, firstID, secondID uuid.UUID) (*domain.Account, *domain.Account, error) {
	if firstID.String() <= secondID.String() {
		first, err := accounts.GetForUpdate(ctx, userID, firstID)
		if err != nil {
			return nil, nil, err
		}
		second, err := accounts.GetForUpdate(ctx, userID, secondID)
		if err != nil {
			return nil, nil, err
		}
		return first, second, nil
	}
	second, err := accounts.GetForUpdate(ctx, userID, secondID)
	if err != nil {
		return nil, nil, err
	}
	first, err := accounts.GetForUpdate(ctx, userID, firstID)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}
