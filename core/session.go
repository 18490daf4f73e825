package core

import "github.com/google/uuid"

// ServiceContext scopes all requests issued by one service to a single
// server-side conversation. It is immutable and safe to share.
type ServiceContext struct {
	sessionID string
}

// NewServiceContext creates a context for an existing session id.
// An empty id generates a new one.
func NewServiceContext(sessionID string) *ServiceContext {
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	return &ServiceContext{sessionID: sessionID}
}

// SessionID returns the session identifier.
func (c *ServiceContext) SessionID() string {
	return c.sessionID
}

// NewSessionID returns a random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
