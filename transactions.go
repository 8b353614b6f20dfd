package main

import (
	"errors"

	"paytracker/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transactionInput carries the five mutable fields of a transaction.
type transactionInput struct {
	Title       string
	Description string
	Amount      decimal.Decimal
	DueDate     models.Date
	Type        models.TransactionType
}

// transactionPage mirrors the usual paginated response shape.
type transactionPage struct {
	Content       []models.Transaction `json:"content"`
	Page          int                  `json:"page"`
	Size          int                  `json:"size"`
	TotalElements int64                `json:"totalElements"`
	TotalPages    int                  `json:"totalPages"`
}

func createTransaction(user *models.User, in transactionInput) (*models.Transaction, error) {
	tx := models.Transaction{
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		CreatedAt:   models.Today(),
		DueDate:     in.DueDate,
		Type:        in.Type,
		UserID:      user.ID,
	}
	if err := db.Create(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// listTransactions pages through the caller's transactions. An empty page is
// a not-found condition, not an empty list.
func listTransactions(user *models.User, page, size int) (*transactionPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	var total int64
	if err := db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		return nil, err
	}
	var items []models.Transaction
	if err := db.Where("user_id = ?", user.ID).
		Order("id").
		Offset(page * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, newError(errNotFound, "You haven't registered any transactions yet!")
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &transactionPage{
		Content:       items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// getOwnedTransaction loads a transaction scoped to its owner. A record that
// exists but belongs to someone else is indistinguishable from a missing one.
func getOwnedTransaction(user *models.User, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(errNotFound, "Transaction not found!")
		}
		return nil, err
	}
	return &tx, nil
}

func replaceTransaction(user *models.User, id uint, in transactionInput) (*models.Transaction, error) {
	tx, err := getOwnedTransaction(user, id)
	if err != nil {
		return nil, err
	}
	tx.ApplyUpdate(in.Title, in.Description, in.Amount, in.DueDate, in.Type)
	if err := db.Save(tx).Error; err != nil {
		return nil, err
	}
	return tx, nil
}

func patchTransaction(user *models.User, id uint, patch models.TransactionPatch) (*models.Transaction, error) {
	tx, err := getOwnedTransaction(user, id)
	if err != nil {
		return nil, err
	}
	tx.ApplyPatch(patch)
	if err := db.Save(tx).Error; err != nil {
		return nil, err
	}
	return tx, nil
}

func deleteTransaction(user *models.User, id uint) error {
	tx, err := getOwnedTransaction(user, id)
	if err != nil {
		return err
	}
	return db.Delete(tx).Error
}
