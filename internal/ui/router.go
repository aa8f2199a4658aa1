package ui

// Route is a named UI state reachable via navigation.
type Route string

const (
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteDashboard Route = "dashboard"
	RouteEditor    Route = "editor"
	RouteCalendar  Route = "calendar"
)

// NavOrder lists the routes shown in the navigation bar.
var NavOrder = []Route{RouteDashboard, RouteEditor, RouteCalendar}

// Known reports whether r is a registered route.
func Known(r Route) bool {
	switch r {
	case RouteLogin, RouteRegister, RouteDashboard, RouteEditor, RouteCalendar:
		return true
	}
	return false
}

// Protected reports whether r requires an active session.
func (r Route) Protected() bool {
	switch r {
	case RouteDashboard, RouteEditor, RouteCalendar:
		return true
	}
	return false
}

// AuthScreen reports whether r renders as a standalone auth page,
// outside the main layout.
func (r Route) AuthScreen() bool {
	return r == RouteLogin || r == RouteRegister
}

// DefaultRoute is the route used when none is requested or the
// requested one is unknown: dashboard when logged in, login otherwise.
func DefaultRoute(loggedIn bool) Route {
	if loggedIn {
		return RouteDashboard
	}
	return RouteLogin
}

// Resolve maps a navigation request to the route that will actually
// render: unknown routes fall back to the default, and protected
// routes redirect to login when no session is active.
func Resolve(requested Route, loggedIn bool) Route {
	r := requested
	if !Known(r) {
		r = DefaultRoute(loggedIn)
	}
	if r.Protected() && !loggedIn {
		return RouteLogin
	}
	return r
}

// Title returns the navigation label for a route.
func (r Route) Title() string {
	switch r {
	case RouteLogin:
		return "Login"
	case RouteRegister:
		return "Register"
	case RouteDashboard:
		return "Dashboard"
	case RouteEditor:
		return "Add/Edit"
	case RouteCalendar:
		return "Calendar"
	}
	return string(r)
}
