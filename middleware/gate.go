package middleware

// AuthState is what the identity layer knows about a caller at decision
// time. Pending means a credential is present but not yet resolved;
// it is distinct from Anonymous so a caller is never bounced to the
// login page while the check is still in flight.
type AuthState int

const (
	AuthPending AuthState = iota
	AuthAnonymous
	AuthAuthenticated
)

type GateResult int

const (
	// GateWait: do not render, do not redirect; the auth check has not
	// settled yet.
	GateWait GateResult = iota
	GateAllow
	GateRedirectLogin
	GateRedirectUnauthorized
)

// GateDecision maps (auth state, caller role, required role) to an
// access decision. An empty requiredRole admits any authenticated
// caller.
func GateDecision(state AuthState, role, requiredRole string) GateResult {
	if state == AuthPending {
		return GateWait
	}
	if state != AuthAuthenticated {
		return GateRedirectLogin
	}
	if requiredRole != "" && role != requiredRole {
		return GateRedirectUnauthorized
	}
	return GateAllow
}
