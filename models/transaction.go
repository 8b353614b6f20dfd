package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts serialize as plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionType is the fixed category of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// AcceptedTypes lists the valid enum values, in declaration order.
var AcceptedTypes = []TransactionType{TypeIncome, TypeExpense}

// InvalidTypeError is returned when a request body carries a transaction
// type outside the enumeration.
type InvalidTypeError struct {
	Value string
}

func (e *InvalidTypeError) Error() string {
	return "invalid transaction type: " + e.Value
}

// AcceptedValues renders the enum values as "INCOME, EXPENSE" for error details.
func AcceptedValues() string {
	vals := make([]string, len(AcceptedTypes))
	for i, t := range AcceptedTypes {
		vals[i] = string(t)
	}
	return strings.Join(vals, ", ")
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch TransactionType(s) {
	case TypeIncome, TypeExpense:
		*t = TransactionType(s)
		return nil
	default:
		return &InvalidTypeError{Value: s}
	}
}

// Transaction is a bill or income entry owned by exactly one user.
// CreatedAt and UserID are set once at creation and never change.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CreatedAt   Date            `gorm:"type:date;not null;autoCreateTime:false;<-:create" json:"createdAt"`
	DueDate     Date            `gorm:"type:date;not null" json:"dueDate"`
	Type        TransactionType `gorm:"size:16;not null" json:"type"`
	UserID      uint            `gorm:"index;not null;<-:create" json:"userId"`
	User        User            `gorm:"foreignKey:UserID" json:"-"`
}

// TransactionPatch carries a partial update. Nil fields are left untouched.
type TransactionPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *Date            `json:"dueDate"`
	Type        *TransactionType `json:"type"`
}

// ApplyUpdate overwrites every mutable field. ID, CreatedAt and UserID
// are preserved.
func (t *Transaction) ApplyUpdate(title, description string, amount decimal.Decimal, dueDate Date, typ TransactionType) {
	t.Title = title
	t.Description = description
	t.Amount = amount
	t.DueDate = dueDate
	t.Type = typ
}

// ApplyPatch overwrites only the fields present in the patch.
func (t *Transaction) ApplyPatch(p TransactionPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
}
