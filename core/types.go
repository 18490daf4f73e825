// Package core provides the request, response and configuration types shared by
// the dialog data service.
package core

import (
	"encoding/json"
	"strings"
)

// ResetContextsQuery is the query text sent alongside a context reset.
// The service requires a non-empty query even when only resetting.
const ResetContextsQuery = "empty_query_for_resetting_contexts"

// Context is a named, time-limited piece of conversational state sent with a
// request to bias interpretation.
type Context struct {
	Name       string            `json:"name"`
	Lifespan   *int              `json:"lifespan,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// NewContext creates a context with the given name and no lifespan override.
func NewContext(name string) Context {
	return Context{Name: name}
}

// WithLifespan returns a copy of the context with the lifespan set.
func (c Context) WithLifespan(lifespan int) Context {
	c.Lifespan = &lifespan
	return c
}

// EntityEntry is a single value of a user entity together with its synonyms.
type EntityEntry struct {
	Value    string   `json:"value" yaml:"value"`
	Synonyms []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
}

// Entity is a user-defined vocabulary uploaded to improve recognition.
type Entity struct {
	Name    string        `json:"name" yaml:"name"`
	Entries []EntityEntry `json:"entries" yaml:"entries"`
}

// AddEntry appends an entry and returns the entity for chaining.
func (e *Entity) AddEntry(value string, synonyms ...string) *Entity {
	e.Entries = append(e.Entries, EntityEntry{Value: value, Synonyms: synonyms})
	return e
}

// Location is an optional geolocation attached to a request.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Request is the query payload sent to the service.
// A Request is built fresh for every call and never reused.
type Request struct {
	Query         []string  `json:"query,omitempty"`
	Confidence    []float32 `json:"confidence,omitempty"`
	Language      Language  `json:"lang,omitempty"`
	SessionID     string    `json:"sessionId,omitempty"`
	Timezone      string    `json:"timezone,omitempty"`
	ResetContexts *bool     `json:"resetContexts,omitempty"`
	Contexts      []Context `json:"contexts,omitempty"`
	Entities      []Entity  `json:"entities,omitempty"`
	Location      *Location `json:"location,omitempty"`
}

// NewTextRequest creates a request for a single query string.
func NewTextRequest(query string) *Request {
	return &Request{Query: []string{query}}
}

// SetResetContexts marks the request as a context reset.
func (r *Request) SetResetContexts(reset bool) {
	r.ResetContexts = &reset
}

// RequestExtras bundles optional augmentation merged into a Request.
// Headers are sent with the HTTP request and never serialized into the body.
type RequestExtras struct {
	Contexts []Context
	Entities []Entity
	Location *Location
	Headers  map[string]string
}

// HasContexts reports whether any contexts are present.
func (e *RequestExtras) HasContexts() bool {
	return e != nil && len(e.Contexts) > 0
}

// HasEntities reports whether any entities are present.
func (e *RequestExtras) HasEntities() bool {
	return e != nil && len(e.Entities) > 0
}

// Metadata describes the intent that matched a query.
type Metadata struct {
	IntentID    string `json:"intentId,omitempty"`
	IntentName  string `json:"intentName,omitempty"`
	WebhookUsed string `json:"webhookUsed,omitempty"`
}

// Fulfillment holds the service's reply to the user.
type Fulfillment struct {
	Speech      string            `json:"speech,omitempty"`
	DisplayText string            `json:"displayText,omitempty"`
	Source      string            `json:"source,omitempty"`
	Messages    []json.RawMessage `json:"messages,omitempty"`
	Data        json.RawMessage   `json:"data,omitempty"`
}

// Result is the resolved interpretation of a query.
type Result struct {
	Source           string                     `json:"source,omitempty"`
	ResolvedQuery    string                     `json:"resolvedQuery,omitempty"`
	Action           string                     `json:"action,omitempty"`
	ActionIncomplete bool                       `json:"actionIncomplete,omitempty"`
	Parameters       map[string]json.RawMessage `json:"parameters,omitempty"`
	Contexts         []Context                  `json:"contexts,omitempty"`
	Metadata         *Metadata                  `json:"metadata,omitempty"`
	Fulfillment      *Fulfillment               `json:"fulfillment,omitempty"`
	Score            float32                    `json:"score,omitempty"`
}

// StringParameter returns the named parameter decoded as a string.
// It reports false when the parameter is missing or not a JSON string.
func (r *Result) StringParameter(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	raw, ok := r.Parameters[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Response is the structured answer returned by the service.
type Response struct {
	ID        string  `json:"id,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	SessionID string  `json:"sessionId,omitempty"`
	Result    *Result `json:"result,omitempty"`
	Status    *Status `json:"status,omitempty"`
}

// IsError reports whether the response carries an error status.
func (r *Response) IsError() bool {
	return r != nil && r.Status != nil && r.Status.IsError()
}

// Cleanup normalizes a successful response in place. Parameters that are JSON
// null or an empty string are dropped and fulfillment speech is trimmed.
func (r *Response) Cleanup() {
	if r == nil || r.Result == nil {
		return
	}
	for name, raw := range r.Result.Parameters {
		if isBlankJSON(raw) {
			delete(r.Result.Parameters, name)
		}
	}
	if f := r.Result.Fulfillment; f != nil {
		f.Speech = strings.TrimSpace(f.Speech)
	}
}

func isBlankJSON(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", `""`:
		return true
	}
	return false
}
