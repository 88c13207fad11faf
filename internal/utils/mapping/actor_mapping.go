package mapping

import (
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/models"
)

// ToModelActor converts a domain Actor to a model Actor (without credentials)
func ToModelActor(d domain.Actor) models.Actor {
	return models.Actor{
		ActorID:     d.ActorID,
		Name:        d.Name,
		Email:       d.Email,
		Role:        string(d.Role),
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainActor converts a model Actor to a domain Actor
func ToDomainActor(m models.Actor) domain.Actor {
	return domain.Actor{
		ActorID:     m.ActorID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        domain.Role(m.Role),
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}
