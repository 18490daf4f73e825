package core

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the default service endpoint root.
const DefaultBaseURL = "https://api.api.ai/v1/"

// DefaultProtocolVersion is the protocol version sent with every request.
const DefaultProtocolVersion = "20150910"

// Language is a service language code.
type Language string

// Supported languages.
const (
	LanguageEnglish          Language = "en"
	LanguageRussian          Language = "ru"
	LanguageGerman           Language = "de"
	LanguagePortuguese       Language = "pt"
	LanguagePortugueseBrazil Language = "pt-BR"
	LanguageSpanish          Language = "es"
	LanguageFrench           Language = "fr"
	LanguageItalian          Language = "it"
	LanguageJapanese         Language = "ja"
	LanguageKorean           Language = "ko"
	LanguageChineseChina     Language = "zh-CN"
	LanguageChineseHongKong  Language = "zh-HK"
	LanguageChineseTaiwan    Language = "zh-TW"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = LanguageEnglish

const (
	questionPath     = "query"
	userEntitiesPath = "userEntities"
)

var supportedLanguages = []Language{
	LanguageEnglish, LanguageRussian, LanguageGerman, LanguagePortuguese,
	LanguagePortugueseBrazil, LanguageSpanish, LanguageFrench, LanguageItalian,
	LanguageJapanese, LanguageKorean, LanguageChineseChina,
	LanguageChineseHongKong, LanguageChineseTaiwan,
}

// SupportedLanguages returns the languages the service accepts.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// ParseLanguage matches a language code case-insensitively.
// It reports false for unsupported codes.
func ParseLanguage(code string) (Language, bool) {
	if code == "" {
		return DefaultLanguage, true
	}
	for _, l := range supportedLanguages {
		if strings.EqualFold(string(l), code) {
			return l, true
		}
	}
	return "", false
}

// Configuration is the per-service snapshot of connection settings.
// Services clone it at construction, so later changes by the caller do not
// affect requests in flight.
type Configuration struct {
	// APIKey is the client access token sent as a bearer token.
	APIKey Secret

	// Language is sent with every query. Defaults to English.
	Language Language

	// BaseURL is the endpoint root and must end with a slash.
	BaseURL string

	// ProtocolVersion is sent as the "v" query parameter.
	ProtocolVersion string

	// Proxy routes requests through an HTTP proxy when set.
	Proxy *url.URL

	// WriteSoundLog persists each voice upload to SoundLogDir.
	WriteSoundLog bool

	// SoundLogDir is where voice uploads are written. Defaults to os.TempDir().
	SoundLogDir string
}

// ConfigOption configures a Configuration.
type ConfigOption func(*Configuration)

// NewConfiguration creates a configuration for the given access token.
func NewConfiguration(apiKey string, language Language, opts ...ConfigOption) *Configuration {
	if language == "" {
		language = DefaultLanguage
	}
	c := &Configuration{
		APIKey:          NewSecret(apiKey),
		Language:        language,
		BaseURL:         DefaultBaseURL,
		ProtocolVersion: DefaultProtocolVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL sets the endpoint root. A trailing slash is added if missing.
func WithBaseURL(base string) ConfigOption {
	return func(c *Configuration) {
		if base != "" && !strings.HasSuffix(base, "/") {
			base += "/"
		}
		c.BaseURL = base
	}
}

// WithProtocolVersion overrides the protocol version.
func WithProtocolVersion(v string) ConfigOption {
	return func(c *Configuration) {
		c.ProtocolVersion = v
	}
}

// WithProxy routes requests through the given proxy.
func WithProxy(proxy *url.URL) ConfigOption {
	return func(c *Configuration) {
		c.Proxy = proxy
	}
}

// WithSoundLog enables writing voice uploads to dir.
func WithSoundLog(dir string) ConfigOption {
	return func(c *Configuration) {
		c.WriteSoundLog = true
		c.SoundLogDir = dir
	}
}

// Clone returns a deep copy of the configuration.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	if c.Proxy != nil {
		p := *c.Proxy
		if c.Proxy.User != nil {
			u := *c.Proxy.User
			p.User = &u
		}
		out.Proxy = &p
	}
	return &out
}

// QuestionURL returns the query endpoint for a session.
func (c *Configuration) QuestionURL(sessionID string) string {
	return c.endpoint(questionPath, sessionID)
}

// UserEntitiesURL returns the user entities endpoint for a session.
func (c *Configuration) UserEntitiesURL(sessionID string) string {
	return c.endpoint(userEntitiesPath, sessionID)
}

func (c *Configuration) endpoint(path, sessionID string) string {
	q := url.Values{}
	if c.ProtocolVersion != "" {
		q.Set("v", c.ProtocolVersion)
	}
	if sessionID != "" {
		q.Set("sessionId", sessionID)
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if len(q) == 0 {
		return base + path
	}
	return base + path + "?" + q.Encode()
}
