package app

import (
	"github.com/univ-lehavre/talent-finder-sub000/internal/config"
	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/audit"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/institutions"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/repository"
	"github.com/univ-lehavre/talent-finder-sub000/internal/pubsub"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the main application entrypoint to wire up the modules.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber

	ConsentRepository domain.ConsentRepository
	AuthEvents        domain.AuthEventRepository

	Stats      institutions.StatsSource
	Search     institutions.Searcher
	Consortium *config.Consortium
	Years      int

	Snapshots repository.SnapshotSource
	GitHub    repository.CountsSource
}

// auditDeps creates the dependency struct for the audit module.
func auditDeps(deps Dependencies) audit.Dependencies {
	return audit.Dependencies{
		Subscriber: deps.Subscriber,
		Events:     deps.AuthEvents,
	}
}

// consentDeps creates the dependency struct for the consent module.
func consentDeps(deps Dependencies) consent.Dependencies {
	return consent.Dependencies{
		Repository: deps.ConsentRepository,
		Publisher:  deps.Publisher,
	}
}

// institutionsDeps creates the dependency struct for the institutions module.
func institutionsDeps(deps Dependencies) institutions.Dependencies {
	return institutions.Dependencies{
		Stats:      deps.Stats,
		Search:     deps.Search,
		Consortium: deps.Consortium,
		Years:      deps.Years,
	}
}

// repositoryDeps creates the dependency struct for the repository module.
func repositoryDeps(deps Dependencies) repository.Dependencies {
	return repository.Dependencies{
		Snapshots: deps.Snapshots,
		GitHub:    deps.GitHub,
	}
}
