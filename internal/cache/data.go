package cache

import (
	"time"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

// DefaultLifetime is how long an entry stays servable: 1440 minutes, so an
// entry written just before midnight is still keyed to yesterday and a
// same-day overwrite always wins.
const DefaultLifetime = 1440 * time.Minute

// entry pairs a stored record with its creation time. Entries are written
// once and read thereafter; overwrite replaces the whole entry.
type entry struct {
	Data      menu.MenuData `json:"data"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Stats is the administrative report over a store's current contents.
type Stats struct {
	Entries   int      `json:"entries"`
	Keys      []string `json:"keys"`
	SizeBytes int      `json:"sizeBytes"`
}
