package dataservice

import (
	"os"
	"strings"
	"time"

	"github.com/petal-labs/dialog/core"
)

// prepareRequest stamps the configured language, the session id and the local
// timezone onto req, overriding caller values, then merges extras.
// It returns the extra headers to send, which are never part of the body.
func (s *Service) prepareRequest(req *core.Request, extras *core.RequestExtras) map[string]string {
	req.Language = s.config.Language
	req.SessionID = s.context.SessionID()
	req.Timezone = s.timezone()

	if extras == nil {
		return nil
	}
	fillRequest(req, extras)
	return extras.Headers
}

// fillRequest copies only the extras that are present. Absent fields keep
// whatever the request already holds.
func fillRequest(req *core.Request, extras *core.RequestExtras) {
	if extras.HasContexts() {
		req.Contexts = extras.Contexts
	}
	if extras.HasEntities() {
		req.Entities = extras.Entities
	}
	if extras.Location != nil {
		loc := *extras.Location
		req.Location = &loc
	}
}

// localTimezone returns the IANA name of the system timezone.
func localTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		return strings.TrimPrefix(tz, ":")
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if _, name, ok := strings.Cut(target, "zoneinfo/"); ok {
			return name
		}
	}
	now := time.Now()
	if name := now.Location().String(); name != "Local" {
		return name
	}
	name, _ := now.Zone()
	return name
}
