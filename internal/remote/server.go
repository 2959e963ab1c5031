package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/genricoloni/dailyblessing/internal/domain"
	"github.com/genricoloni/dailyblessing/internal/session"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"go.uber.org/zap"
)

const (
	// DefaultBusName is requested when no bus name is configured
	DefaultBusName = "org.dailyblessing.Viewer"
	// ObjectPath is where the viewer object is exported
	ObjectPath = dbus.ObjectPath("/org/dailyblessing/Viewer")
	// Interface is the D-Bus interface of the viewer object
	Interface = "org.dailyblessing.Viewer"
	// StateChangedSignal is emitted after every session change
	StateChangedSignal = Interface + ".StateChanged"
)

// Controller is the session surface driven over the bus
type Controller interface {
	CurrentQuote() (domain.QuoteRecord, bool)
	Next()
	Previous()
	ToggleFavorite(ctx context.Context, q domain.QuoteRecord) (bool, error)
	IsFavorite(q domain.QuoteRecord) bool
	ToggleAutoScroll() bool
	SelectTheme(ctx context.Context, sel domain.ThemeSelection) error
	IsAutoScrolling() bool
	SelectedTheme() domain.ThemeSelection
	Favorites() domain.FavoriteSet
	SetObserver(obs session.Observer)
}

// Server exports the session on the session bus and broadcasts its changes
type Server struct {
	logger *zap.Logger
	cfg    domain.Config
	ctrl   Controller
	dial   func() (BusConn, error) // Replaced in tests

	mu   sync.Mutex
	conn BusConn
}

// NewServer creates a server for ctrl. Nothing touches the bus until Start.
func NewServer(logger *zap.Logger, cfg domain.Config, ctrl Controller) *Server {
	return &Server{
		logger: logger,
		cfg:    cfg,
		ctrl:   ctrl,
		dial:   connectSessionBus,
	}
}

// Start connects to the session bus, exports the viewer and claims the bus name.
// An unavailable bus or a taken name is logged and leaves the server idle;
// the viewer keeps working without remote control.
func (s *Server) Start(ctx context.Context) error {
	if !s.cfg.RemoteEnabled() {
		s.logger.Info("Remote control disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	conn, err := s.dial()
	if err != nil {
		s.logger.Warn("Session bus unavailable, remote control disabled", zap.Error(err))
		return nil
	}

	name := s.busName()
	if err := s.export(conn, name); err != nil {
		s.logger.Warn("Failed to publish remote control, remote control disabled",
			zap.String("name", name),
			zap.Error(err))
		if cerr := conn.Close(); cerr != nil {
			s.logger.Warn("Failed to close D-Bus connection", zap.Error(cerr))
		}
		return nil
	}

	s.conn = conn
	s.ctrl.SetObserver(func(st session.State) {
		s.emit(conn, st)
	})

	s.logger.Info("Remote control published",
		zap.String("name", name),
		zap.String("path", string(ObjectPath)))
	return nil
}

// Stop detaches from the session and closes the bus connection
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	// Waits for any in-flight notification, so conn is no longer used afterwards
	s.ctrl.SetObserver(nil)

	err := s.conn.Close()
	s.conn = nil
	if err != nil {
		return fmt.Errorf("failed to close D-Bus connection: %w", err)
	}

	s.logger.Info("Remote control stopped")
	return nil
}

func (s *Server) busName() string {
	if name := s.cfg.GetBusName(); name != "" {
		return name
	}
	return DefaultBusName
}

func (s *Server) export(conn BusConn, name string) error {
	v := &viewer{ctrl: s.ctrl}

	if err := conn.Export(v, ObjectPath, Interface); err != nil {
		return fmt.Errorf("failed to export viewer: %w", err)
	}
	if err := conn.Export(introspection(v), ObjectPath, introspect.IntrospectData.Name); err != nil {
		return fmt.Errorf("failed to export introspection data: %w", err)
	}

	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken (reply %d)", name, reply)
	}
	return nil
}

// emit runs under the session lock; it must not call back into the session
func (s *Server) emit(conn BusConn, st session.State) {
	id := ""
	if st.HasQuote {
		id = st.Quote.ID.String()
	}

	if err := conn.Emit(ObjectPath, StateChangedSignal,
		int32(st.Index), id, st.AutoScrolling, int32(st.Theme)); err != nil {
		s.logger.Warn("Failed to emit state change", zap.Error(err))
		return
	}

	s.logger.Debug("State change emitted",
		zap.Int("index", st.Index),
		zap.Bool("autoScrolling", st.AutoScrolling),
		zap.Stringer("theme", st.Theme))
}
