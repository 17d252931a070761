package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGateDecision(t *testing.T) {
	tests := []struct {
		name         string
		state        AuthState
		role         string
		requiredRole string
		want         GateResult
	}{
		{"pending waits", AuthPending, "", "admin", GateWait},
		{"pending waits even with role", AuthPending, "admin", "admin", GateWait},
		{"anonymous redirects to login", AuthAnonymous, "", "admin", GateRedirectLogin},
		{"anonymous redirects without required role", AuthAnonymous, "", "", GateRedirectLogin},
		{"wrong role redirects to unauthorized", AuthAuthenticated, "client", "admin", GateRedirectUnauthorized},
		{"admin blocked from client area", AuthAuthenticated, "admin", "client", GateRedirectUnauthorized},
		{"matching role allowed", AuthAuthenticated, "admin", "admin", GateAllow},
		{"no required role allows any authenticated", AuthAuthenticated, "client", "", GateAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GateDecision(tt.state, tt.role, tt.requiredRole)
			if got != tt.want {
				t.Errorf("GateDecision(%v, %q, %q) = %v, want %v", tt.state, tt.role, tt.requiredRole, got, tt.want)
			}
		})
	}
}

func TestGateDecisionPendingNeverRedirects(t *testing.T) {
	roles := []string{"", "admin", "client", "unknown"}
	for _, role := range roles {
		for _, required := range roles {
			got := GateDecision(AuthPending, role, required)
			if got == GateRedirectLogin || got == GateRedirectUnauthorized {
				t.Errorf("GateDecision(pending, %q, %q) redirected: %v", role, required, got)
			}
		}
	}
}

func TestApplyGateResult(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		result       GateResult
		wantProceed  bool
		wantStatus   int
		wantRedirect bool
	}{
		{"allow proceeds", GateAllow, true, http.StatusOK, false},
		{"wait holds with 401 and no redirect", GateWait, false, http.StatusUnauthorized, false},
		{"login redirect", GateRedirectLogin, false, http.StatusUnauthorized, true},
		{"unauthorized redirect", GateRedirectUnauthorized, false, http.StatusForbidden, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			proceed := applyGateResult(c, tt.result)
			if proceed != tt.wantProceed {
				t.Errorf("proceed = %v, want %v", proceed, tt.wantProceed)
			}
			if !tt.wantProceed {
				if w.Code != tt.wantStatus {
					t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
				}
				if got := strings.Contains(w.Body.String(), "redirect"); got != tt.wantRedirect {
					t.Errorf("body redirect presence = %v, want %v (body %q)", got, tt.wantRedirect, w.Body.String())
				}
				if !c.IsAborted() {
					t.Error("request not aborted")
				}
			}
		})
	}
}
