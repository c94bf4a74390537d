package cache

import "github.com/rohmanhakim/liondine-api/internal/menu"

// Store defines the port interface for day-scoped menu caching.
// This interface follows the port-adapter pattern, allowing the in-memory
// and file-backed adapters to be swapped without changing the pipeline.
//
// Keys are derived from (meal type, current UTC calendar day), so a request
// made after midnight resolves to a new key and yesterday's entry goes stale
// without any explicit expiry check.
type Store interface {
	// Get retrieves the record cached for meal on the current calendar day.
	//
	// Expiration is a precondition check with a side effect: an entry whose
	// age has reached the configured lifetime is deleted during the lookup
	// and reported as a miss. Get is therefore NOT a pure query, and
	// implementations must preserve the delete-on-expiry behavior.
	Get(meal menu.MealType) (menu.MenuData, bool)

	// Put stores data under the key for meal on the current calendar day,
	// inserting or overwriting atomically with CreatedAt = now. No
	// validation happens here; callers store only records they already
	// accepted.
	Put(meal menu.MealType, data menu.MenuData)

	// Clear removes all entries unconditionally. Idempotent.
	Clear()

	// Sweep removes every entry whose age has reached the lifetime and
	// returns the exact count removed. It exists for memory hygiene only;
	// day-scoped keys already make stale data unreachable.
	Sweep() int

	// Stats reports entry count, keys, and approximate serialized size.
	// The size is informational (dashboards), never an eviction input.
	Stats() Stats
}
