// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/models"
	"golang.org/x/sync/errgroup"
)

// Source lists the three day streams for a user.
type Source interface {
	ListSleep(ctx context.Context, userID string, opts db.ListOptions) ([]models.SleepRecord, error)
	ListMeals(ctx context.Context, userID string, opts db.ListOptions) ([]models.Meal, error)
	ListRoutines(ctx context.Context, userID string, opts db.ListOptions) ([]models.Routine, error)
}

// Loader fetches a window of records and indexes it.
type Loader struct {
	src Source
}

func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load reads sleep, meals and routines for the inclusive key range
// concurrently and returns an Index covering it.
func (l *Loader) Load(ctx context.Context, userID, from, to string) (*Index, error) {
	var (
		sleeps   []models.SleepRecord
		meals    []models.Meal
		routines []models.Routine
	)
	opts := db.ListOptions{From: from, To: to, Limit: db.Unbounded}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sleeps, err = l.src.ListSleep(gctx, userID, opts)
		return err
	})
	g.Go(func() (err error) {
		meals, err = l.src.ListMeals(gctx, userID, opts)
		return err
	})
	g.Go(func() (err error) {
		routines, err = l.src.ListRoutines(gctx, userID, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load %s..%s: %w", from, to, err)
	}

	ix := NewIndex(sleeps, meals, routines)
	ix.from, ix.to = from, to
	return ix, nil
}

// Day loads and aggregates a single date.
func (l *Loader) Day(ctx context.Context, userID, key string) (Day, error) {
	ix, err := l.Load(ctx, userID, key, key)
	if err != nil {
		return Day{}, err
	}
	return ix.Day(key), nil
}

// Holder publishes the current Index. A rebuilt index replaces the old one
// wholesale; readers never see a partial rebuild.
type Holder struct {
	current atomic.Pointer[Index]
}

func (h *Holder) Load() *Index {
	return h.current.Load()
}

func (h *Holder) Store(ix *Index) {
	h.current.Store(ix)
}

// replace swaps in next only if old is still current.
func (h *Holder) replace(old, next *Index) bool {
	return h.current.CompareAndSwap(old, next)
}

// Cache keeps one Holder per user so calendar views reuse a loaded window
// until that user's data changes.
type Cache struct {
	loader *Loader

	mu      sync.Mutex
	holders map[string]*Holder
}

func NewCache(loader *Loader) *Cache {
	return &Cache{loader: loader, holders: make(map[string]*Holder)}
}

func (c *Cache) holder(userID string) *Holder {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.holders[userID]
	if !ok {
		h = &Holder{}
		c.holders[userID] = h
	}
	return h
}

// Window returns an Index covering [from, to], loading it when the cached
// one does not.
func (c *Cache) Window(ctx context.Context, userID, from, to string) (*Index, error) {
	h := c.holder(userID)
	old := h.Load()
	if old.Covers(from, to) {
		return old, nil
	}

	ix, err := c.loader.Load(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	// an Invalidate during the load wins; the fresh index is still returned
	h.replace(old, ix)
	return ix, nil
}

// Invalidate drops the user's cached window after a write.
func (c *Cache) Invalidate(userID string) {
	c.holder(userID).Store(&Index{})
}
