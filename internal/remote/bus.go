package remote

import (
	"github.com/godbus/dbus/v5"
)

// BusConn defines the subset of a D-Bus connection the server needs.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/bus_conn_mock.go -package=mocks github.com/genricoloni/dailyblessing/internal/remote BusConn
type BusConn interface {
	// Export publishes the exported methods of v on path under iface
	Export(v any, path dbus.ObjectPath, iface string) error

	// RequestName asks the bus for a well-known name
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)

	// Emit broadcasts a signal from path. name is the fully qualified member name.
	Emit(path dbus.ObjectPath, name string, values ...any) error

	// Close closes the D-Bus connection
	Close() error
}

// connectSessionBus opens a private connection to the session bus.
// *dbus.Conn satisfies BusConn as is.
func connectSessionBus() (BusConn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return conn, nil
}
