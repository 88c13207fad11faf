package services

import (
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
)

// EvidencePolicy holds the acceptance rules enforced by the evidence store.
type EvidencePolicy struct {
	MaxSizeBytes  int64
	AcceptedTypes []string
}

// NewServiceContainer wires the repositories into the service facades handed
// to the HTTP layer.
func NewServiceContainer(repos portsrepo.RepositoryProvider, policy EvidencePolicy) *portssvc.ServiceContainer {
	actorSvc := NewActorService(repos.ActorRepo)
	evidenceSvc := NewEvidenceService(repos.EvidenceRepo, policy.MaxSizeBytes, policy.AcceptedTypes)
	return &portssvc.ServiceContainer{
		Lifecycle: NewLifecycleService(repos.DocumentRepo, actorSvc, evidenceSvc),
		Actor:     actorSvc,
		Evidence:  evidenceSvc,
	}
}
