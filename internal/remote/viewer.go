package remote

import (
	"context"
	"errors"
	"time"

	"github.com/genricoloni/dailyblessing/internal/domain"
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// callTimeout bounds the storage work done by a single bus call
const callTimeout = 5 * time.Second

var errEmptyCatalog = &dbus.Error{
	Name: Interface + ".EmptyCatalog",
	Body: []any{"catalog has no quotes"},
}

// viewer is the object exported on the bus.
// Every exported method becomes a D-Bus method of Interface.
type viewer struct {
	ctrl Controller
}

func (v *viewer) Next() *dbus.Error {
	v.ctrl.Next()
	return nil
}

func (v *viewer) Previous() *dbus.Error {
	v.ctrl.Previous()
	return nil
}

// ToggleFavorite flips the current quote's membership and returns it.
// A persistence failure is reported after the in-memory toggle took effect.
func (v *viewer) ToggleFavorite() (bool, *dbus.Error) {
	q, ok := v.ctrl.CurrentQuote()
	if !ok {
		return false, errEmptyCatalog
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	member, err := v.ctrl.ToggleFavorite(ctx, q)
	if err != nil {
		return member, dbus.MakeFailedError(err)
	}
	return member, nil
}

func (v *viewer) ToggleAutoScroll() (bool, *dbus.Error) {
	return v.ctrl.ToggleAutoScroll(), nil
}

func (v *viewer) SelectTheme(sel int32) *dbus.Error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	err := v.ctrl.SelectTheme(ctx, domain.ThemeSelection(sel))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidTheme):
		return &dbus.Error{Name: Interface + ".InvalidTheme", Body: []any{err.Error()}}
	default:
		return dbus.MakeFailedError(err)
	}
}

// CurrentQuote returns id, text, author and category of the displayed quote
func (v *viewer) CurrentQuote() (string, string, string, string, *dbus.Error) {
	q, ok := v.ctrl.CurrentQuote()
	if !ok {
		return "", "", "", "", errEmptyCatalog
	}
	return q.ID.String(), q.Text, q.Author, q.Category, nil
}

func (v *viewer) IsFavorite() (bool, *dbus.Error) {
	q, ok := v.ctrl.CurrentQuote()
	if !ok {
		return false, nil
	}
	return v.ctrl.IsFavorite(q), nil
}

func (v *viewer) IsAutoScrolling() (bool, *dbus.Error) {
	return v.ctrl.IsAutoScrolling(), nil
}

func (v *viewer) SelectedTheme() (int32, *dbus.Error) {
	return int32(v.ctrl.SelectedTheme()), nil
}

func (v *viewer) Favorites() ([]string, *dbus.Error) {
	return v.ctrl.Favorites().Strings(), nil
}

// introspection describes Interface, including the StateChanged signal
func introspection(v *viewer) introspect.Introspectable {
	node := &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: introspect.Methods(v),
				Signals: []introspect.Signal{
					{
						Name: "StateChanged",
						Args: []introspect.Arg{
							{Name: "index", Type: "i"},
							{Name: "id", Type: "s"},
							{Name: "autoScrolling", Type: "b"},
							{Name: "theme", Type: "i"},
						},
					},
				},
			},
		},
	}
	return introspect.NewIntrospectable(node)
}
