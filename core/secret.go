package core

// Secret holds an access token and keeps it out of logs and serialized output.
// String, GoString, MarshalJSON and MarshalText all return a redacted
// placeholder; Expose returns the real value.
//
//	key := NewSecret("0123abcd")
//	fmt.Println(key)          // [REDACTED]
//	req.Header.Set("Authorization", key.BearerToken())
type Secret struct {
	value string
}

// NewSecret creates a new Secret from a string value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// String implements fmt.Stringer.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer.
func (s Secret) GoString() string {
	return "core.Secret{[REDACTED]}"
}

// MarshalJSON returns a redacted JSON string.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

// MarshalText returns a redacted text representation (used by YAML and zerolog).
func (s Secret) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// Expose returns the actual secret value.
func (s Secret) Expose() string {
	return s.value
}

// BearerToken returns the value formatted for an Authorization header.
func (s Secret) BearerToken() string {
	return "Bearer " + s.value
}

// IsEmpty returns true if the secret value is empty.
func (s Secret) IsEmpty() bool {
	return s.value == ""
}
