package ui

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		requested Route
		loggedIn  bool
		want      Route
	}{
		{"protected while logged out", RouteDashboard, false, RouteLogin},
		{"editor while logged out", RouteEditor, false, RouteLogin},
		{"calendar while logged out", RouteCalendar, false, RouteLogin},
		{"protected while logged in", RouteDashboard, true, RouteDashboard},
		{"login while logged out", RouteLogin, false, RouteLogin},
		{"register while logged out", RouteRegister, false, RouteRegister},
		{"register while logged in", RouteRegister, true, RouteRegister},
		{"unknown falls back to login", Route("bogus"), false, RouteLogin},
		{"unknown falls back to dashboard", Route("bogus"), true, RouteDashboard},
		{"empty request", Route(""), true, RouteDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.requested, tt.loggedIn); got != tt.want {
				t.Errorf("Resolve(%q, %v): got %q, want %q", tt.requested, tt.loggedIn, got, tt.want)
			}
		})
	}
}

func TestDefaultRoute(t *testing.T) {
	if got := DefaultRoute(true); got != RouteDashboard {
		t.Errorf("DefaultRoute(true): got %q", got)
	}
	if got := DefaultRoute(false); got != RouteLogin {
		t.Errorf("DefaultRoute(false): got %q", got)
	}
}

func TestAuthScreen(t *testing.T) {
	for _, r := range []Route{RouteLogin, RouteRegister} {
		if !r.AuthScreen() {
			t.Errorf("%q should be an auth screen", r)
		}
		if r.Protected() {
			t.Errorf("%q should not be protected", r)
		}
	}
	for _, r := range NavOrder {
		if r.AuthScreen() {
			t.Errorf("%q should not be an auth screen", r)
		}
		if !r.Protected() {
			t.Errorf("%q should be protected", r)
		}
	}
}
