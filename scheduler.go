package main

import (
	"time"

	"paytracker/models"
	"paytracker/pkg/mailer"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// notificationTargetDate picks which due date tonight's run notifies about.
func notificationTargetDate(today models.Date, daysAhead int) models.Date {
	return today.AddDays(daysAhead)
}

// dueTransactions fetches every transaction, system-wide, due exactly on
// target, with its owner preloaded for addressing.
func dueTransactions(db *gorm.DB, target models.Date) ([]models.Transaction, error) {
	var items []models.Transaction
	err := db.Preload("User").Where("due_date = ?", target).Find(&items).Error
	return items, err
}

// notificationFor maps one due transaction to the email about it.
func notificationFor(tx models.Transaction) mailer.Notification {
	return mailer.Notification{
		To:          tx.User.Email,
		Name:        tx.User.Name,
		Description: tx.Description,
		DueDate:     tx.DueDate.String(),
		Amount:      mailer.FormatAmount(tx.Amount),
		Type:        string(tx.Type),
	}
}

// notifyAll sends one email per transaction, sequentially. A failed send is
// logged and never blocks notification of the remaining transactions.
func notifyAll(m *mailer.Mailer, items []models.Transaction) {
	for _, tx := range items {
		if err := m.Send(notificationFor(tx)); err != nil {
			log.Error().Err(err).Uint("transaction_id", tx.ID).Str("to", tx.User.Email).Msg("notification send failed")
		}
	}
}

// runDueNotifier is the nightly job body.
func runDueNotifier(db *gorm.DB, m *mailer.Mailer, today models.Date, daysAhead int) {
	target := notificationTargetDate(today, daysAhead)
	items, err := dueTransactions(db, target)
	if err != nil {
		log.Error().Err(err).Str("due_date", target.String()).Msg("due transaction query failed")
		return
	}
	log.Info().Str("due_date", target.String()).Int("count", len(items)).Msg("running due-date notifier")
	notifyAll(m, items)
}

// startScheduler wires the nightly trigger. SkipIfStillRunning keeps a slow
// run from overlapping the next one.
func startScheduler(cfg *Config, m *mailer.Mailer) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(cfg.NotifyCron, func() {
		runDueNotifier(db, m, models.NewDate(time.Now()), cfg.NotifyDaysAhead)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
