package scheduler

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/config"
	"github.com/aungaung101025-ux/adupayment/internal/services"
	"github.com/aungaung101025-ux/adupayment/internal/testutil"
)

type captureNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *captureNotifier) Notify(userID int64, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func (n *captureNotifier) countContaining(substr string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	matched := 0
	for _, m := range n.messages {
		if strings.Contains(m, substr) {
			matched++
		}
	}
	return matched
}

func TestTick(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	userSvc := services.NewUserService(db)
	catSvc := services.NewCategoryService(db, userSvc)
	accSvc := services.NewAccountService(db)
	txSvc := services.NewTransactionService(db, userSvc, catSvc, accSvc)
	notifier := &captureNotifier{}
	recurringSvc := services.NewRecurringService(db, userSvc, notifier)
	reportSvc := services.NewReportService(db, txSvc)

	// Premium user with both reminders on; default summary day is Sunday.
	user := testutil.CreateTestPremiumUser(t, db, 30)
	testutil.AssertNoError(t, db.Model(user).Updates(map[string]interface{}{
		"daily_reminder": true,
		"weekly_summary": true,
	}).Error)

	cfg := &config.Config{RecurringHour: 8, ReminderMorning: 9, ReminderEvening: 19}
	daemon := NewDaemon(cfg, recurringSvc, userSvc, reportSvc, notifier)

	// 2025-06-15 is a Sunday. At 20:00 all three job hours have passed.
	current := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	daemon.now = func() time.Time { return current }

	t.Run("late_start_runs_all_due_jobs", func(t *testing.T) {
		daemon.tick()
		// Daily reminder, weekly summary, evening check-in.
		if got := notifier.count(); got != 3 {
			t.Fatalf("expected 3 notifications, got %d: %v", got, notifier.messages)
		}
		if notifier.countContaining("This month so far") != 1 {
			t.Error("expected a weekly summary on the user's chosen day")
		}
	})

	t.Run("same_day_tick_is_quiet", func(t *testing.T) {
		current = current.Add(30 * time.Minute)
		daemon.tick()
		if got := notifier.count(); got != 3 {
			t.Errorf("expected no additional notifications, got %d", got)
		}
	})

	t.Run("next_day_before_hours_is_quiet", func(t *testing.T) {
		current = time.Date(2025, 6, 16, 7, 0, 0, 0, time.UTC)
		daemon.tick()
		if got := notifier.count(); got != 3 {
			t.Errorf("expected nothing before the configured hours, got %d", got)
		}
	})

	t.Run("next_day_morning_skips_weekly", func(t *testing.T) {
		current = time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC)
		daemon.tick()
		// Monday morning: daily reminder only, no summary, no evening.
		if got := notifier.count(); got != 4 {
			t.Errorf("expected one new notification, got %d total: %v", notifier.count(), notifier.messages)
		}
		if notifier.countContaining("This month so far") != 1 {
			t.Error("expected no weekly summary off the chosen day")
		}
	})
}
