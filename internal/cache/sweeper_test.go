package cache

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohmanhakim/liondine-api/internal/menu"
)

// countingStore is a test double recording Sweep invocations.
type countingStore struct {
	sweeps atomic.Int64
}

func (c *countingStore) Get(menu.MealType) (menu.MenuData, bool) { return menu.MenuData{}, false }
func (c *countingStore) Put(menu.MealType, menu.MenuData)        {}
func (c *countingStore) Clear()                                  {}
func (c *countingStore) Stats() Stats                            { return Stats{} }
func (c *countingStore) Sweep() int {
	c.sweeps.Add(1)
	return 0
}

func TestSweeper_RunsPeriodically(t *testing.T) {
	store := &countingStore{}
	sweeper := NewSweeper(store, 10*time.Millisecond, nil)

	sweeper.Start()
	defer sweeper.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for store.sweeps.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected at least 2 sweep passes, got %d", store.sweeps.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSweeper_StopHaltsLoop(t *testing.T) {
	store := &countingStore{}
	sweeper := NewSweeper(store, 5*time.Millisecond, nil)

	sweeper.Start()
	time.Sleep(20 * time.Millisecond)
	sweeper.Stop()

	after := store.sweeps.Load()
	time.Sleep(30 * time.Millisecond)
	if store.sweeps.Load() != after {
		t.Error("expected no sweeps after Stop")
	}
}

func TestSweeper_StopWithoutStart(t *testing.T) {
	sweeper := NewSweeper(&countingStore{}, time.Hour, nil)
	// Must not panic or block.
	sweeper.Stop()
}

func TestSweeper_RemovesExpiredEntriesEndToEnd(t *testing.T) {
	clock := time.Date(2026, 1, 28, 6, 0, 0, 0, time.UTC)
	store := NewMemoryStoreForTest(time.Hour, func() time.Time { return clock })
	store.Put(menu.MealBreakfast, sampleMenu(menu.MealBreakfast))

	clock = clock.Add(2 * time.Hour)

	sweeper := NewSweeper(store, 10*time.Millisecond, nil)
	sweeper.Start()
	defer sweeper.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for store.Stats().Entries != 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected the sweeper to remove the expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
