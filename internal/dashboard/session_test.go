package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hivewatch/internal/domain"
)

// sessionServer is a minimal API for exercising session flows. historyCalls
// counts fetches so tests can assert which actions refetch.
type sessionServer struct {
	srv          *httptest.Server
	historyCalls int64
	rows         []domain.Reading
}

func newSessionServer(rows []domain.Reading) *sessionServer {
	s := &sessionServer{rows: rows}
	mux := http.NewServeMux()
	mux.HandleFunc("/data-limits", func(w http.ResponseWriter, r *http.Request) {
		ext := domain.Extent{}
		if len(s.rows) > 0 {
			ext.Min = &s.rows[0].Timestamp
			ext.Max = &s.rows[len(s.rows)-1].Timestamp
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ext)
	})
	mux.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.historyCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.rows)
	})
	s.srv = httptest.NewServer(mux)
	return s
}

func newTestSession(t *testing.T, s *sessionServer, view View) (*Session, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{}
	client := NewClient(s.srv.URL, zap.NewNop())
	presenter := NewPresenter(surface, zap.NewNop())
	return NewSession(client, presenter, view, zap.NewNop()), surface
}

func TestSessionInit_LoadsDefaultWindow(t *testing.T) {
	s := newSessionServer(sampleReadings())
	defer s.srv.Close()

	session, surface := newTestSession(t, s, ViewOverview)
	require.NoError(t, session.Init(time.Now()))

	assert.Len(t, surface.drawn, 4)
	assert.NoError(t, session.Filter().Validate(), "default window must be a complete filter")
	assert.EqualValues(t, 1, atomic.LoadInt64(&s.historyCalls))
}

func TestSessionApplyFilter_RejectsInvalidWithoutFetch(t *testing.T) {
	s := newSessionServer(sampleReadings())
	defer s.srv.Close()

	session, _ := newTestSession(t, s, ViewOverview)
	require.NoError(t, session.Init(time.Now()))
	before := atomic.LoadInt64(&s.historyCalls)

	err := session.ApplyFilter(domain.HistoryQuery{StartDate: "2026-08-20"})

	assert.Error(t, err)
	assert.EqualValues(t, before, atomic.LoadInt64(&s.historyCalls))
}

func TestSessionApplyFilter_Refetches(t *testing.T) {
	s := newSessionServer(sampleReadings())
	defer s.srv.Close()

	session, _ := newTestSession(t, s, ViewWeight)
	require.NoError(t, session.Init(time.Now()))

	q := domain.HistoryQuery{
		StartDate: "2026-08-20", EndDate: "2026-08-22",
		StartTime: "08:00:00", EndTime: "18:00:00",
	}
	require.NoError(t, session.ApplyFilter(q))

	assert.Equal(t, q, session.Filter())
	assert.EqualValues(t, 2, atomic.LoadInt64(&s.historyCalls))
}

func TestSessionApplyFilter_TransportErrorClearsCache(t *testing.T) {
	s := newSessionServer(sampleReadings())

	session, surface := newTestSession(t, s, ViewWeight)
	require.NoError(t, session.Init(time.Now()))
	require.NotEmpty(t, surface.drawn)

	// Server gone; the stale window must not survive under the new filter.
	s.srv.Close()
	err := session.ApplyFilter(domain.HistoryQuery{
		StartDate: "2026-08-20", EndDate: "2026-08-22",
		StartTime: "08:00:00", EndTime: "18:00:00",
	})

	assert.Error(t, err)
	assert.Equal(t, PlaceholderNoData, surface.placeholders[len(surface.placeholders)-1])
	assert.Equal(t, 0, session.presenter.ChartCount())
}

func TestSessionRefresh_RefetchesActiveWindow(t *testing.T) {
	s := newSessionServer(sampleReadings())
	defer s.srv.Close()

	session, surface := newTestSession(t, s, ViewWeight)
	require.NoError(t, session.Init(time.Now()))
	filter := session.Filter()

	require.NoError(t, session.Refresh())

	assert.Equal(t, filter, session.Filter(), "refresh must not change the window")
	assert.EqualValues(t, 2, atomic.LoadInt64(&s.historyCalls))
	last := surface.drawn[len(surface.drawn)-1]
	assert.Equal(t, "Weight (g)", last.Title)
}

func TestSessionSelectView_NoRefetch(t *testing.T) {
	s := newSessionServer(sampleReadings())
	defer s.srv.Close()

	session, surface := newTestSession(t, s, ViewOverview)
	require.NoError(t, session.Init(time.Now()))
	before := atomic.LoadInt64(&s.historyCalls)

	session.SelectView(ViewTemperature)

	assert.Equal(t, ViewTemperature, session.View())
	assert.EqualValues(t, before, atomic.LoadInt64(&s.historyCalls))
	last := surface.drawn[len(surface.drawn)-1]
	assert.Equal(t, "Temperature (°C)", last.Title)
}
