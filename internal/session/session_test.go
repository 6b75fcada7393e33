package session

import (
	"sync"
	"testing"
	"time"
)

func TestStepExpects(t *testing.T) {
	cases := []struct {
		step Step
		want InputKind
	}{
		{StepIdle, InputNone},
		{StepAwaitingGoalName, InputText},
		{StepAwaitingGoalAmount, InputAmount},
		{StepAwaitingGoalDate, InputDate},
		{StepAwaitingReportStart, InputDate},
		{StepAwaitingReportEnd, InputDate},
		{StepAwaitingCategoryName, InputText},
		{StepAwaitingBudgetCategory, InputText},
		{StepAwaitingBudgetAmount, InputAmount},
		{StepAwaitingAccountName, InputText},
		{StepAwaitingAccountBalance, InputAmount},
		{StepAwaitingBroadcast, InputText},
	}
	for _, tc := range cases {
		if got := tc.step.Expects(); got != tc.want {
			t.Errorf("step %q: expected kind %d, got %d", tc.step, tc.want, got)
		}
	}
}

func TestStore(t *testing.T) {
	t.Run("unknown_user_is_idle", func(t *testing.T) {
		store := NewStore()
		state := store.Get(1)
		if state.Step != StepIdle {
			t.Errorf("expected idle, got %q", state.Step)
		}
	})

	t.Run("advance_preserves_drafts", func(t *testing.T) {
		store := NewStore()
		store.Set(1, State{
			Step: StepAwaitingGoalAmount,
			Goal: GoalDraft{Name: "Vacation"},
		})

		state := store.Advance(1, StepAwaitingGoalDate)
		if state.Step != StepAwaitingGoalDate {
			t.Errorf("expected step advanced, got %q", state.Step)
		}
		if state.Goal.Name != "Vacation" {
			t.Errorf("expected draft preserved, got %q", state.Goal.Name)
		}
	})

	t.Run("clear_drops_everything", func(t *testing.T) {
		store := NewStore()
		store.Set(1, State{Step: StepAwaitingBudgetAmount, Category: "Transport"})
		store.Clear(1)

		state := store.Get(1)
		if state.Step != StepIdle || state.Category != "" {
			t.Errorf("expected empty state after clear, got %+v", state)
		}
	})

	t.Run("users_are_independent", func(t *testing.T) {
		store := NewStore()
		store.Set(1, State{Step: StepAwaitingGoalName})
		store.Set(2, State{Step: StepAwaitingBroadcast})

		if store.Get(1).Step != StepAwaitingGoalName || store.Get(2).Step != StepAwaitingBroadcast {
			t.Error("expected per-user state isolation")
		}
	})
}

func TestExpire(t *testing.T) {
	t.Run("removes_only_stale_states", func(t *testing.T) {
		store := NewStore()
		current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return current }

		store.Set(1, State{Step: StepAwaitingGoalName})

		current = current.Add(10 * time.Minute)
		store.Set(2, State{Step: StepAwaitingBudgetAmount})

		current = current.Add(10 * time.Minute)
		removed := store.Expire(15 * time.Minute)
		if removed != 1 {
			t.Fatalf("expected 1 expired state, got %d", removed)
		}
		if store.Get(1).Step != StepIdle {
			t.Error("expected stale state removed")
		}
		if store.Get(2).Step != StepAwaitingBudgetAmount {
			t.Error("expected fresh state kept")
		}
	})
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Set(id, State{Step: StepAwaitingGoalName})
			store.Advance(id, StepAwaitingGoalAmount)
			_ = store.Get(id)
			store.Clear(id)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		if store.Get(i).Step != StepIdle {
			t.Fatalf("expected user %d cleared", i)
		}
	}
}
