package cache

import (
	"testing"
	"time"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

func TestKey_Format(t *testing.T) {
	day := time.Date(2026, 1, 28, 12, 0, 0, 0, time.UTC)

	got := Key(menu.MealLunch, day)
	if got != "lunch_2026-01-28" {
		t.Errorf("expected lunch_2026-01-28, got %s", got)
	}
}

func TestKey_SameDaySameKey(t *testing.T) {
	morning := time.Date(2026, 1, 28, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 1, 28, 23, 59, 59, 0, time.UTC)

	if Key(menu.MealDinner, morning) != Key(menu.MealDinner, night) {
		t.Error("expected the same key for the same meal on the same calendar day")
	}
}

func TestKey_DayRolloverChangesKey(t *testing.T) {
	before := time.Date(2026, 1, 28, 23, 59, 59, 0, time.UTC)
	after := time.Date(2026, 1, 29, 0, 0, 1, 0, time.UTC)

	k1 := Key(menu.MealLunch, before)
	k2 := Key(menu.MealLunch, after)
	if k1 == k2 {
		t.Errorf("expected midnight rollover to change the key, got %s twice", k1)
	}
	if k2 != "lunch_2026-01-29" {
		t.Errorf("expected lunch_2026-01-29, got %s", k2)
	}
}

func TestKey_UsesUTCDay(t *testing.T) {
	// 23:30 in UTC-5 is already 04:30 next day in UTC.
	est := time.FixedZone("EST", -5*3600)
	local := time.Date(2026, 1, 28, 23, 30, 0, 0, est)

	if got := Key(menu.MealLatenight, local); got != "latenight_2026-01-29" {
		t.Errorf("expected key on the UTC day, got %s", got)
	}
}

func TestKey_DistinctMealsDistinctKeys(t *testing.T) {
	day := time.Date(2026, 1, 28, 12, 0, 0, 0, time.UTC)

	seen := make(map[string]struct{})
	for _, meal := range menu.MealTypes() {
		seen[Key(meal, day)] = struct{}{}
	}
	if len(seen) != len(menu.MealTypes()) {
		t.Errorf("expected %d distinct keys, got %d", len(menu.MealTypes()), len(seen))
	}
}
