package app

import (
	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/audit"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/consent"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/institutions"
	"github.com/univ-lehavre/talent-finder-sub000/internal/modules/repository"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	modules := []module.Module{
		consent.New(consentDeps(deps)),
		institutions.New(institutionsDeps(deps)),
		repository.New(repositoryDeps(deps)),
	}
	// Auditing needs the bus and the store; without them sign-in still works.
	if deps.Subscriber != nil && deps.AuthEvents != nil {
		modules = append(modules, audit.New(auditDeps(deps)))
	}
	return modules
}
