package structurer

import (
	"context"

	"github.com/rohmanhakim/liondine-api/internal/menu"
	"github.com/rohmanhakim/liondine-api/pkg/failure"
)

// Structurer defines the interface for turning raw menu text into a
// structured record. The extraction policy (closure detection, hours
// formatting, station/item grouping) is this collaborator's contract;
// the pipeline never re-derives it.
//
// Implementations must guarantee that a hall with status "closed" carries an
// empty station list, and that the returned record's top-level hall sequence
// is present. Everything past that is the provider's judgment.
type Structurer interface {
	Structure(ctx context.Context, text string, meal menu.MealType) (menu.MenuData, failure.ClassifiedError)
}

// Compile-time interface check
var _ Structurer = (*OpenAIStructurer)(nil)
