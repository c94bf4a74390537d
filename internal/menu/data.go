package menu

import (
	"fmt"
	"time"
)

// MealType is one of the four meal periods served by the dining halls.
// It is the unit of caching and fetching.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealLatenight MealType = "latenight"
)

// MealTypes lists every valid meal period in serving order.
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner, MealLatenight}
}

// ParseMealType validates a caller-supplied meal period against the fixed set.
func ParseMealType(raw string) (MealType, error) {
	switch MealType(raw) {
	case MealBreakfast, MealLunch, MealDinner, MealLatenight:
		return MealType(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMealType, raw)
}

func (m MealType) String() string {
	return string(m)
}

// Hall status values. A closed hall always carries an empty station list;
// that policy is enforced at the structurer boundary, not re-checked here.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Station groups food items under a named serving line (e.g. "Main Line",
// "Vegan Station").
type Station struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// DiningHall is one venue on the menu page, with its posted hours and the
// stations it is serving for this meal period.
type DiningHall struct {
	Name     string    `json:"name"`
	Hours    string    `json:"hours"`
	Status   string    `json:"status,omitempty"`
	Stations []Station `json:"stations"`
}

// MenuData is the validated, machine-readable menu for one meal period on one
// day. Field names are part of the wire contract and must not change.
type MenuData struct {
	MealType    MealType     `json:"mealType"`
	Timestamp   time.Time    `json:"timestamp"`
	DiningHalls []DiningHall `json:"diningHalls"`
}
