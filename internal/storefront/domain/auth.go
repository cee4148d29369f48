package domain

// SessionAction is what the transport should do with the session credential
// once an operation completes.
type SessionAction int

const (
	SessionKeep SessionAction = iota
	SessionIssue
	SessionRevoke
	// SessionChallenge means the password was right but a second factor is
	// still owed; the transport remembers UserID as pending.
	SessionChallenge
)

func (a SessionAction) String() string {
	switch a {
	case SessionIssue:
		return "issue"
	case SessionRevoke:
		return "revoke"
	case SessionChallenge:
		return "challenge"
	default:
		return "keep"
	}
}

// SessionDecision is returned by the orchestrator instead of touching
// cookies itself.
type SessionDecision struct {
	Action SessionAction
	UserID int64
}

// LoginResult is the outcome of a successful credential check.
type LoginResult struct {
	UserID           int64
	RequireTwoFactor bool
	Session          SessionDecision
}
