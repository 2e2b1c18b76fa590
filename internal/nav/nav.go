// Package nav maps a location identifier onto one of the three top-level
// surfaces and fans out change notifications, the hash-router role.
package nav

import (
	"strings"
	"sync"

	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/notify"
)

// Location is the fragment-derived path. It is always one of the three known
// values; anything unrecognized collapses to the kiosk root.
type Location string

const (
	LocationRoot      Location = "/"
	LocationAdmin     Location = "/admin"
	LocationDashboard Location = "/dashboard"
)

// ParseLocation normalizes a raw fragment. An absent or empty signal
// defaults to the root.
func ParseLocation(raw string) Location {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	switch Location(raw) {
	case LocationAdmin:
		return LocationAdmin
	case LocationDashboard:
		return LocationDashboard
	default:
		return LocationRoot
	}
}

// Surface is a top-level view.
type Surface int

const (
	SurfaceKiosk Surface = iota
	SurfaceLogin
	SurfaceAdmin
)

func (s Surface) String() string {
	switch s {
	case SurfaceLogin:
		return "login"
	case SurfaceAdmin:
		return "admin"
	default:
		return "kiosk"
	}
}

// Resolve applies the routing policy, first match wins: the admin path
// without a session shows the login surface; any location with a session
// shows the admin workspace; everything else is the kiosk. Once
// authenticated the kiosk is unreachable until logout.
func Resolve(loc Location, authenticated bool) Surface {
	switch {
	case loc == LocationAdmin && !authenticated:
		return SurfaceLogin
	case authenticated:
		return SurfaceAdmin
	default:
		return SurfaceKiosk
	}
}

// Controller owns nothing: the location is always derived from the last
// navigation signal, and observers are told synchronously whenever it
// changes, whether the change came through Navigate or from outside.
type Controller struct {
	mu      sync.Mutex
	current Location
	hub     *notify.Hub[Location]
}

func NewController() *Controller {
	return &Controller{
		current: LocationRoot,
		hub:     notify.NewHub[Location](),
	}
}

// CurrentLocation returns the active location.
func (c *Controller) CurrentLocation() Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Navigate sets the navigation signal. Rendering happens via the change
// notification, not here.
func (c *Controller) Navigate(loc Location) {
	c.set(ParseLocation(string(loc)))
}

// HandleExternal feeds an external navigation event (address-bar edit,
// back/forward) into the controller.
func (c *Controller) HandleExternal(raw string) {
	c.set(ParseLocation(raw))
}

// Subscribe registers an observer called synchronously on every location
// change. The returned cleanup must run on teardown.
func (c *Controller) Subscribe(fn func(Location)) func() {
	return c.hub.Subscribe(fn)
}

func (c *Controller) set(loc Location) {
	c.mu.Lock()
	changed := loc != c.current
	c.current = loc
	c.mu.Unlock()

	// Setting the same fragment again fires no change event.
	if changed {
		c.hub.Publish(loc)
	}
}
