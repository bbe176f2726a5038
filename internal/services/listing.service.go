package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/internal/repository"
	"github.com/swiftport/customs-dashboard/pkg/logger"
)

// ContainerStore is the record store the views talk to.
type ContainerStore interface {
	List(ctx context.Context) ([]*model.Container, error) // newest first
	Create(ctx context.Context, c *model.Container) (*model.Container, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Clock returns the current instant. Risk is derived from it on every read.
type Clock func() time.Time

// Confirmer asks the user to confirm a destructive action.
type Confirmer func() bool

// Row is one rendered line of the dashboard table.
type Row struct {
	*model.Container
	Risk         model.RiskTier     `json:"risk"`
	Indicator    string             `json:"indicator,omitempty"`
	Presentation model.Presentation `json:"presentation"`
}

// ListingView owns the in-memory list of containers shown on the dashboard.
type ListingView struct {
	store   ContainerStore
	timeout time.Duration

	mu      sync.RWMutex
	items   []*model.Container
	loading bool
	lastErr error
}

func NewListingView(store ContainerStore, timeout time.Duration) *ListingView {
	return &ListingView{
		store:   store,
		timeout: timeout,
	}
}

// Load replaces the list with a fresh fetch. On failure the previous list
// stays in place and the error is kept for display.
func (v *ListingView) Load(ctx context.Context) error {
	v.setLoading(true)
	defer v.setLoading(false)

	ctx, cancel := withTimeout(ctx, v.timeout)
	defer cancel()

	start := time.Now()
	items, err := v.store.List(ctx)
	observeStoreOp("list", start, err)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		logger.Error("failed to load containers", "error", err)
		v.lastErr = &StoreError{Op: "list", Err: err}
		return v.lastErr
	}
	v.items = items
	v.lastErr = nil
	return nil
}

// Refresh reloads the list. It is the hook the creation form fires after a
// successful insert.
func (v *ListingView) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

func (v *ListingView) setLoading(b bool) {
	v.mu.Lock()
	v.loading = b
	v.mu.Unlock()
}

func (v *ListingView) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}

// Err is the error of the last load, nil when it succeeded.
func (v *ListingView) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastErr
}

func (v *ListingView) Items() []*model.Container {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]*model.Container, len(v.items))
	copy(out, v.items)
	return out
}

// Rows classifies every item against now.
func (v *ListingView) Rows(now time.Time) []Row {
	items := v.Items()
	rows := make([]Row, len(items))
	for i, c := range items {
		rows[i] = RenderRow(c, now)
	}
	observeRisk(rows)
	return rows
}

func RenderRow(c *model.Container, now time.Time) Row {
	risk := c.Risk(now)
	row := Row{
		Container:    c,
		Risk:         risk,
		Presentation: model.Present(c.Status),
	}
	if risk != model.RiskNone {
		row.Indicator = risk.String()
	}
	return row
}

// Delete removes a container once confirm agrees. The in-memory list only
// changes when the store reports success.
func (v *ListingView) Delete(ctx context.Context, id uuid.UUID, confirm Confirmer) error {
	if confirm == nil || !confirm() {
		return ErrDeleteCanceled
	}

	ctx, cancel := withTimeout(ctx, v.timeout)
	defer cancel()

	start := time.Now()
	err := v.store.Delete(ctx, id)
	observeStoreOp("delete", start, err)
	if err != nil {
		logger.Error("failed to delete container", "id", id, "error", err)
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrNotFound
		}
		return &StoreError{Op: "delete", Err: err}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	kept := v.items[:0:0]
	for _, c := range v.items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	v.items = kept
	logger.Info("container deleted", "id", id)
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
