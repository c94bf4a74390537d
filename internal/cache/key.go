package cache

import (
	"fmt"
	"time"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

// Key derives the cache key for meal at instant t: "{meal}_{YYYY-MM-DD}".
//
// The calendar day is taken in UTC, the module's fixed reference zone, so
// two requests for the same meal on the same UTC day always resolve to the
// same key regardless of server locale.
func Key(meal menu.MealType, t time.Time) string {
	return fmt.Sprintf("%s_%s", meal, t.UTC().Format("2006-01-02"))
}
