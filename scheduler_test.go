package main

import (
	"errors"
	"testing"
	"time"

	"paytracker/models"
	"paytracker/pkg/mailer"

	"github.com/shopspring/decimal"
	"gopkg.in/gomail.v2"
)

func TestNotificationTargetDate(t *testing.T) {
	today := models.NewDate(time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC))
	target := notificationTargetDate(today, 2)
	if target.String() != "2026-09-01" {
		t.Fatalf("target = %s, want 2026-09-01", target)
	}
}

func TestNotificationForMapsOwnerAndFields(t *testing.T) {
	tx := models.Transaction{
		ID:          7,
		Description: "Electricity bill",
		Amount:      decimal.RequireFromString("3500.00"),
		DueDate:     models.NewDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		Type:        models.TypeExpense,
		User:        models.User{Name: "Eduardo", Email: "edu@email.com"},
	}
	n := notificationFor(tx)
	if n.To != "edu@email.com" {
		t.Errorf("To = %q", n.To)
	}
	if n.Name != "Eduardo" {
		t.Errorf("Name = %q", n.Name)
	}
	if n.Description != "Electricity bill" {
		t.Errorf("Description = %q", n.Description)
	}
	if n.DueDate != "2026-09-01" {
		t.Errorf("DueDate = %q", n.DueDate)
	}
	if n.Amount != "R$ 3500.00" {
		t.Errorf("Amount = %q", n.Amount)
	}
	if n.Type != "EXPENSE" {
		t.Errorf("Type = %q", n.Type)
	}
}

func dueTransaction(id uint, email string) models.Transaction {
	return models.Transaction{
		ID:          id,
		Description: "Bill",
		Amount:      decimal.RequireFromString("10.00"),
		DueDate:     models.NewDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		Type:        models.TypeExpense,
		User:        models.User{Name: "User", Email: email},
	}
}

func TestNotifyAllContinuesPastFailedSend(t *testing.T) {
	var recipients []string
	m := mailer.NewWithSender("noreply@paytracker.io", func(msgs ...*gomail.Message) error {
		for _, msg := range msgs {
			recipients = append(recipients, msg.GetHeader("To")...)
		}
		if len(recipients) == 1 {
			return errors.New("smtp: 550 mailbox unavailable")
		}
		return nil
	})

	items := []models.Transaction{
		dueTransaction(1, "first@email.com"),
		dueTransaction(2, "second@email.com"),
		dueTransaction(3, "third@email.com"),
	}
	notifyAll(m, items)

	if len(recipients) != 3 {
		t.Fatalf("attempted %d sends, want 3; recipients=%v", len(recipients), recipients)
	}
	if recipients[1] != "second@email.com" || recipients[2] != "third@email.com" {
		t.Errorf("later transactions not notified after a failure: %v", recipients)
	}
}
