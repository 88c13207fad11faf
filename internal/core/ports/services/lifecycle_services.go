package services

import (
	"context"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/clubsalud/findoc_backend/internal/dto"
)

// LifecycleSvcFacade is the only public mutation API for financial documents.
// Every command is an atomic check-then-apply step against one document.
type LifecycleSvcFacade interface {
	// CreateDocument registers a new obligation in PendingApproval.
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorActorID string) (*domain.Document, error)

	// GetDocumentByID retrieves a document with its ledger.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a filtered, token-paginated page of documents.
	ListDocuments(ctx context.Context, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error)

	// DecideDocument applies the single approve/reject decision.
	DecideDocument(ctx context.Context, documentID string, req dto.DecideDocumentRequest, actorID string) (*domain.Document, error)

	// RegisterPayment appends one evidence-backed payment to the ledger.
	RegisterPayment(ctx context.Context, documentID string, req dto.RegisterPaymentRequest, actorID string) (*domain.Document, error)

	// EmitInvoice certifies emission eligibility and flips the invoice flag exactly once.
	EmitInvoice(ctx context.Context, documentID string, actorID string) (*domain.Document, error)

	// DeleteDocument removes a document that is neither approved nor carries payments.
	DeleteDocument(ctx context.Context, documentID string, actorID string) error
}
