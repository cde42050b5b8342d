package app

import (
	"time"

	"github.com/univ-lehavre/talent-finder-sub000/internal/database"
	"github.com/univ-lehavre/talent-finder-sub000/internal/health"
)

// HealthTimeout bounds each dependency check.
const HealthTimeout = 5 * time.Second

// RequiredCollections are the tables the application cannot run without.
var RequiredCollections = []string{
	database.TableUser,
	database.TableConsent,
	database.TableConsentEvent,
	database.TableAuthEvent,
}

// RequiredConsentAttributes are the fields the consent pages read.
var RequiredConsentAttributes = []string{"user", "type", "granted", "updated_at"}

// Probe is what the dependency checks need from the database.
type Probe interface {
	health.VersionSource
	health.SchemaInspector
}

// NewHealthChecker builds the checks in the order they are reported. The
// public URL check is skipped when publicURL is empty.
func NewHealthChecker(probe Probe, client health.HeadRequester, publicURL string) *health.Checker {
	checks := []health.Check{health.Identity(probe)}
	if publicURL != "" {
		checks = append(checks, health.PublicURL(client, publicURL))
	}
	checks = append(checks,
		health.Collections(probe, RequiredCollections...),
		health.Attributes(probe, database.TableConsent, RequiredConsentAttributes...),
	)
	return health.NewChecker(HealthTimeout, checks...)
}
