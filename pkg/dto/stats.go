package dto

import "github.com/shopspring/decimal"

// CategorySum is one row of the per-category monthly statistics.
type CategorySum struct {
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"-"`
	TotalAmount  float64         `json:"total_amount"`
}

// MonthSum is one row of the per-month yearly analytics.
type MonthSum struct {
	Month       int             `json:"month"`
	Total       decimal.Decimal `json:"-"`
	TotalAmount float64         `json:"total_amount"`
}

// Statistics is the monthly statistics response.
type Statistics struct {
	Statistics  []CategorySum `json:"statistics"`
	TotalAmount float64       `json:"total_amount"`
}
