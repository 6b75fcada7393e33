// Package scheduler runs the periodic jobs: recurring transaction
// materialization, daily reminders and weekly summaries.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/config"
	"github.com/aungaung101025-ux/adupayment/internal/logger"
	"github.com/aungaung101025-ux/adupayment/internal/services"
)

// tickInterval is how often the daemon checks whether a job is due.
const tickInterval = time.Minute

// Daemon drives the scheduled jobs off a single clock loop. Each job fires
// at most once per day, at its configured hour.
type Daemon struct {
	cfg       *config.Config
	recurring services.RecurringServicer
	users     services.UserServicer
	reports   services.ReportServicer
	notifier  services.Notifier
	now       func() time.Time

	lastRecurring string
	lastMorning   string
	lastEvening   string
}

// NewDaemon creates a scheduler daemon.
func NewDaemon(cfg *config.Config, recurring services.RecurringServicer, users services.UserServicer, reports services.ReportServicer, notifier services.Notifier) *Daemon {
	return &Daemon{
		cfg:       cfg,
		recurring: recurring,
		users:     users,
		reports:   reports,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Start blocks until ctx is cancelled, checking for due jobs every tick.
func (d *Daemon) Start(ctx context.Context) {
	log := logger.Named("scheduler")
	log.Infow("scheduler started",
		"recurring_hour", d.cfg.RecurringHour,
		"reminder_morning", d.cfg.ReminderMorning,
		"reminder_evening", d.cfg.ReminderEvening,
	)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Infow("scheduler stopped")
			return
		case <-ticker.C:
			d.tick()
		}
	}
}

func (d *Daemon) tick() {
	now := d.now()
	day := now.Format("2006-01-02")

	if now.Hour() >= d.cfg.RecurringHour && d.lastRecurring != day {
		d.lastRecurring = day
		d.runRecurring()
	}
	if now.Hour() >= d.cfg.ReminderMorning && d.lastMorning != day {
		d.lastMorning = day
		d.runMorning(now)
	}
	if now.Hour() >= d.cfg.ReminderEvening && d.lastEvening != day {
		d.lastEvening = day
		d.runEvening()
	}
}

func (d *Daemon) runRecurring() {
	log := logger.Named("scheduler")
	report, err := d.recurring.RunDaily()
	if err != nil {
		log.Errorw("recurring run failed", "error", err)
		return
	}
	log.Infow("recurring run finished",
		"users", report.UsersProcessed,
		"executed", report.Executed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
}

// runMorning sends the daily reminder and, on each user's chosen weekday,
// the weekly summary.
func (d *Daemon) runMorning(now time.Time) {
	log := logger.Named("scheduler")
	targets, err := d.users.UsersForReminders()
	if err != nil {
		log.Errorw("failed to load reminder targets", "error", err)
		return
	}

	weekday := now.Weekday().String()
	for _, target := range targets {
		if target.DailyReminder {
			d.notify(target.UserID, "Good morning! Don't forget to record today's income and expenses.")
		}
		if target.WeeklySummary && target.WeeklyDay == weekday {
			d.sendWeeklySummary(target.UserID)
		}
	}
	log.Infow("morning reminders sent", "targets", len(targets))
}

func (d *Daemon) runEvening() {
	log := logger.Named("scheduler")
	targets, err := d.users.UsersForReminders()
	if err != nil {
		log.Errorw("failed to load reminder targets", "error", err)
		return
	}

	sent := 0
	for _, target := range targets {
		if !target.DailyReminder {
			continue
		}
		d.notify(target.UserID, "Evening check-in: any spending today you haven't recorded yet?")
		sent++
	}
	log.Infow("evening reminders sent", "targets", sent)
}

func (d *Daemon) sendWeeklySummary(userID int64) {
	log := logger.Named("scheduler")
	summary, err := d.reports.Summary(userID)
	if err != nil {
		log.Warnw("failed to build weekly summary", "user_id", userID, "error", err)
		return
	}
	msg := fmt.Sprintf("This month so far: income %d, expenses %d, balance %d.",
		summary.TotalIncome, summary.TotalExpense, summary.Balance)
	d.notify(userID, msg)
}

func (d *Daemon) notify(userID int64, message string) {
	if d.notifier == nil {
		return
	}
	if err := d.notifier.Notify(userID, message); err != nil {
		logger.Named("scheduler").Warnw("reminder delivery failed", "user_id", userID, "error", err)
	}
}
