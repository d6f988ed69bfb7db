package dashboard

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"hivewatch/internal/domain"
)

// Session ties the API client to the presenter: it owns the active filter
// window and the selected view, and decides when a refetch happens. Filter
// changes refetch; view changes redraw from the cache only.
type Session struct {
	client    *Client
	presenter *Presenter
	logger    *zap.Logger

	view   View
	filter domain.HistoryQuery
}

func NewSession(client *Client, presenter *Presenter, view View, logger *zap.Logger) *Session {
	return &Session{
		client:    client,
		presenter: presenter,
		logger:    logger,
		view:      view,
	}
}

// Init derives the default window from the store extent and loads it.
func (s *Session) Init(now time.Time) error {
	ext, err := s.client.DataLimits()
	if err != nil {
		s.logger.Warn("data limits unavailable, anchoring default window on now", zap.Error(err))
		ext = domain.Extent{}
	}
	s.filter = domain.DefaultWindow(ext, now)
	return s.reload()
}

// ApplyFilter validates and activates a new window, then refetches. On a
// transport failure the cache is cleared rather than left showing the old
// window under the new filter.
func (s *Session) ApplyFilter(q domain.HistoryQuery) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	s.filter = q
	return s.reload()
}

// ResetFilter returns to the default window and refetches.
func (s *Session) ResetFilter(now time.Time) error {
	return s.Init(now)
}

// SelectView switches the rendered view using the cached window. No fetch.
func (s *Session) SelectView(v View) {
	s.view = v
	s.presenter.Render(s.view)
}

// View reports the currently selected view.
func (s *Session) View() View {
	return s.view
}

// Filter reports the active window.
func (s *Session) Filter() domain.HistoryQuery {
	return s.filter
}

// Refresh refetches the active window without changing it.
func (s *Session) Refresh() error {
	return s.reload()
}

func (s *Session) reload() error {
	rows, err := s.client.History(s.filter)
	if err != nil {
		s.presenter.Clear()
		s.presenter.Render(s.view)
		return fmt.Errorf("history fetch failed: %w", err)
	}
	s.presenter.SetHistory(rows)
	s.presenter.Render(s.view)
	return nil
}
