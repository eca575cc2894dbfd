package model

import "time"

// FlowToken uniquely identifies one in-flight login flow
type FlowToken string

// Flow carries one guest's state across the redirect-based handshake.
// Every intercepted client gets its own randomly keyed flow, so concurrent
// logins never share state.
type Flow struct {
	Token     FlowToken    `json:"token"`
	Join      *JoinRequest `json:"join"`
	Identity  *Identity    `json:"identity,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Authenticated reports whether the flow has a resolved identity
func (f *Flow) Authenticated() bool {
	return f.Identity != nil
}
