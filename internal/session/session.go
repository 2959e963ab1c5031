package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/genricoloni/dailyblessing/internal/autoscroll"
	"github.com/genricoloni/dailyblessing/internal/domain"
	"github.com/genricoloni/dailyblessing/internal/favorites"
	"github.com/genricoloni/dailyblessing/internal/theme"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// State is a point-in-time view of the session
type State struct {
	Index         int
	Quote         domain.QuoteRecord
	HasQuote      bool
	Favorite      bool
	AutoScrolling bool
	Theme         domain.ThemeSelection
}

// Observer receives a snapshot after every state change.
// It runs with the session locked and must not call back into the session.
type Observer func(State)

// Session is the view-model of the quote viewer.
// It owns the catalog, the current position, the favorite set, the theme
// selection and the auto-scroll timer. All methods are safe for concurrent use.
type Session struct {
	logger     *zap.Logger
	favStore   domain.FavoriteStore
	themeStore domain.ThemeStore

	mu        sync.Mutex
	catalog   domain.Catalog
	index     int
	favorites domain.FavoriteSet
	theme     domain.ThemeSelection
	timer     *autoscroll.Timer
	observer  Observer
}

// New loads the catalog and the persisted preferences and starts auto-scrolling
func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg domain.Config,
	loader domain.CatalogLoader,
	favStore domain.FavoriteStore,
	themeStore domain.ThemeStore,
	clock clockwork.Clock,
) *Session {
	s := &Session{
		logger:     logger,
		favStore:   favStore,
		themeStore: themeStore,
		catalog:    loader.Load(ctx),
		favorites:  favStore.Load(ctx),
		theme:      themeStore.Load(ctx),
	}
	if s.favorites == nil {
		s.favorites = domain.FavoriteSet{}
	}

	s.timer = autoscroll.NewTimer(logger, clock, cfg.GetAutoScrollInterval(), &s.mu, s.advanceLocked)

	s.mu.Lock()
	s.timer.Start()
	s.mu.Unlock()

	logger.Info("Session ready",
		zap.Int("quotes", len(s.catalog)),
		zap.Int("favorites", len(s.favorites)),
		zap.Stringer("theme", s.theme),
		zap.Duration("interval", s.timer.Interval()))

	return s
}

// SetObserver installs the change observer, replacing any previous one.
// A nil observer disables notifications.
func (s *Session) SetObserver(obs Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = obs
}

// CurrentQuote returns the record at the current index, or false for an empty catalog
func (s *Session) CurrentQuote() (domain.QuoteRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

// Next moves to the following quote, wrapping to the first
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step(1)
}

// Previous moves to the preceding quote, wrapping to the last
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step(-1)
}

// ToggleFavorite flips membership of q and persists the set.
// It returns the new membership. On a save error the in-memory toggle is kept.
func (s *Session) ToggleFavorite(ctx context.Context, q domain.QuoteRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favorites = favorites.Toggle(s.favorites, q.ID)
	member := s.favorites.Contains(q.ID)
	s.notify()

	if err := s.favStore.Save(ctx, s.favorites); err != nil {
		s.logger.Error("Failed to persist favorites",
			zap.Stringer("quote", q.ID),
			zap.Error(err))
		return member, err
	}

	s.logger.Debug("Favorite toggled",
		zap.Stringer("quote", q.ID),
		zap.Bool("favorite", member))
	return member, nil
}

// IsFavorite reports whether q is in the favorite set
func (s *Session) IsFavorite(q domain.QuoteRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(q.ID)
}

// ToggleAutoScroll starts or stops automatic advancing and returns the new state
func (s *Session) ToggleAutoScroll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	running := s.timer.Toggle()
	s.logger.Info("Auto-scroll toggled", zap.Bool("enabled", running))
	s.notify()
	return running
}

// SelectTheme sets and persists the theme selection.
// Unknown selections are rejected with domain.ErrInvalidTheme.
func (s *Session) SelectTheme(ctx context.Context, sel domain.ThemeSelection) error {
	if !sel.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidTheme, int(sel))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = sel
	s.notify()

	if err := s.themeStore.Save(ctx, sel); err != nil {
		s.logger.Error("Failed to persist theme", zap.Stringer("theme", sel), zap.Error(err))
		return err
	}

	s.logger.Info("Theme selected", zap.Stringer("theme", sel))
	return nil
}

// IsAutoScrolling reports whether the auto-scroll timer is running
func (s *Session) IsAutoScrolling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Running()
}

// SelectedTheme returns the current theme selection
func (s *Session) SelectedTheme() domain.ThemeSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// CurrentTheme returns the palette of the selected theme
func (s *Session) CurrentTheme() domain.ThemeDefinition {
	return theme.Lookup(s.SelectedTheme())
}

// Favorites returns a copy of the favorite set
func (s *Session) Favorites() domain.FavoriteSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Clone()
}

// FavoriteQuotes returns the favorited records in catalog order.
// Favorites whose quote is no longer in the catalog are skipped.
func (s *Session) FavoriteQuotes() []domain.QuoteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.QuoteRecord
	for _, q := range s.catalog {
		if s.favorites.Contains(q.ID) {
			out = append(out, q)
		}
	}
	return out
}

// Index returns the current position in the catalog
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Len returns the number of quotes in the catalog
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.catalog)
}

// Snapshot returns the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Close stops auto-scrolling and waits for any in-flight tick to finish
func (s *Session) Close() {
	s.timer.Shutdown()
	s.logger.Info("Session closed")
}

// advanceLocked is the timer's tick path; the timer already holds s.mu
func (s *Session) advanceLocked() {
	s.step(1)
}

func (s *Session) step(delta int) {
	n := len(s.catalog)
	if n == 0 {
		return
	}
	s.index = ((s.index+delta)%n + n) % n
	s.notify()
}

func (s *Session) currentLocked() (domain.QuoteRecord, bool) {
	if len(s.catalog) == 0 {
		return domain.QuoteRecord{}, false
	}
	return s.catalog[s.index], true
}

func (s *Session) stateLocked() State {
	q, ok := s.currentLocked()
	return State{
		Index:         s.index,
		Quote:         q,
		HasQuote:      ok,
		Favorite:      ok && s.favorites.Contains(q.ID),
		AutoScrolling: s.timer.Running(),
		Theme:         s.theme,
	}
}

func (s *Session) notify() {
	if s.observer != nil {
		s.observer(s.stateLocked())
	}
}
