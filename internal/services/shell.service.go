package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/pkg/logger"
)

// Dashboard is everything the page needs for one render.
type Dashboard struct {
	Rows         []Row          `json:"items"`
	Total        int            `json:"total"`
	Loading      bool           `json:"loading"`
	Error        string         `json:"error,omitempty"`
	FormVisible  bool           `json:"form_visible"`
	SubmitBusy   bool           `json:"submit_busy"`
	RefreshCount uint64         `json:"refresh_count"`
	Today        model.Date     `json:"today"`
	Statuses     []model.Status `json:"-"`
}

// Shell composes the listing and the creation form. It owns whether the
// form is shown and how many times the listing was refreshed.
type Shell struct {
	listing *ListingView
	form    *CreationForm
	clock   Clock

	mu          sync.RWMutex
	formVisible bool
	refreshes   uint64
}

func NewShell(listing *ListingView, form *CreationForm, clock Clock) *Shell {
	if clock == nil {
		clock = time.Now
	}
	s := &Shell{
		listing: listing,
		form:    form,
		clock:   clock,
	}
	form.OnSuccess(func(ctx context.Context, c *model.Container) {
		if err := s.Refresh(ctx); err != nil {
			logger.Warn("refresh after create failed", "id", c.ID, "error", err)
		}
	})
	return s
}

func (s *Shell) Listing() *ListingView { return s.listing }

func (s *Shell) Form() *CreationForm { return s.form }

func (s *Shell) Now() time.Time { return s.clock() }

func (s *Shell) OpenForm() {
	s.mu.Lock()
	s.formVisible = true
	s.mu.Unlock()
}

func (s *Shell) CloseForm() {
	s.mu.Lock()
	s.formVisible = false
	s.mu.Unlock()
}

func (s *Shell) FormVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formVisible
}

func (s *Shell) RefreshCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshes
}

// Refresh closes the form, bumps the refresh counter and reloads the listing.
func (s *Shell) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.refreshes++
	s.formVisible = false
	s.mu.Unlock()
	return s.listing.Refresh(ctx)
}

// View loads the listing and snapshots the dashboard. A failed load is not
// fatal, the previous rows are shown with the error.
func (s *Shell) View(ctx context.Context) Dashboard {
	_ = s.listing.Load(ctx)
	return s.Snapshot()
}

// Snapshot renders the current state without touching the store.
func (s *Shell) Snapshot() Dashboard {
	now := s.clock()
	rows := s.listing.Rows(now)

	d := Dashboard{
		Rows:         rows,
		Total:        len(rows),
		Loading:      s.listing.Loading(),
		FormVisible:  s.FormVisible(),
		SubmitBusy:   s.form.Busy(),
		RefreshCount: s.RefreshCount(),
		Today:        model.DateOf(now),
		Statuses:     model.Statuses,
	}
	if err := s.listing.Err(); err != nil {
		d.Error = err.Error()
	}
	return d
}

// Submit forwards to the creation form. On success the form's callback has
// already refreshed the listing and closed the form.
func (s *Shell) Submit(ctx context.Context, req model.ContainerCreateRequest, file *model.Attachment) (*model.Container, error) {
	return s.form.Submit(ctx, req, file)
}

func (s *Shell) Delete(ctx context.Context, id uuid.UUID, confirm Confirmer) error {
	return s.listing.Delete(ctx, id, confirm)
}
