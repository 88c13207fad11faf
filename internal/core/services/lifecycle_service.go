package services

import (
	"fmt"
	"log/slog"
	"time"

	"context"

	"github.com/google/uuid"

	"github.com/clubsalud/findoc_backend/internal/apperrors"
	"github.com/clubsalud/findoc_backend/internal/core/domain"
	portsrepo "github.com/clubsalud/findoc_backend/internal/core/ports/repositories"
	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/clubsalud/findoc_backend/internal/middleware"
)

// creatorRoles is the minimal role set allowed to create documents.
var creatorRoles = map[domain.Role]struct{}{
	domain.RoleReception:  {},
	domain.RoleFinance:    {},
	domain.RoleSuperAdmin: {},
}

// deleterRoles is the minimal role set allowed to delete documents.
var deleterRoles = map[domain.Role]struct{}{
	domain.RoleFinance:    {},
	domain.RoleSuperAdmin: {},
}

// lifecycleService dispatches lifecycle commands to the three gates. It holds
// no state of its own beyond routing; each command runs as one atomic
// check-then-apply step against a single locked document row, so concurrent
// commands on the same document serialize and the balance check never reads a
// stale ledger sum.
type lifecycleService struct {
	docRepo     portsrepo.DocumentRepositoryWithTx
	actorSvc    portssvc.ActorSvcFacade
	evidenceSvc portssvc.EvidenceSvcFacade

	approvalGate ApprovalGate
	ledger       PaymentLedger
	invoiceGate  InvoiceGate
}

// NewLifecycleService creates the document lifecycle engine.
func NewLifecycleService(docRepo portsrepo.DocumentRepositoryWithTx, actorSvc portssvc.ActorSvcFacade, evidenceSvc portssvc.EvidenceSvcFacade) portssvc.LifecycleSvcFacade {
	return &lifecycleService{
		docRepo:     docRepo,
		actorSvc:    actorSvc,
		evidenceSvc: evidenceSvc,
	}
}

// Ensure lifecycleService implements the portssvc.LifecycleSvcFacade interface
var _ portssvc.LifecycleSvcFacade = (*lifecycleService)(nil)

// CreateDocument registers a new obligation in PendingApproval.
func (s *lifecycleService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorActorID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.actorSvc.ResolveRole(ctx, creatorActorID)
	if err != nil {
		return nil, err
	}
	if _, ok := creatorRoles[role]; !ok {
		logger.Warn("Actor not allowed to create documents", slog.String("role", string(role)))
		return nil, ErrInsufficientRole
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	principal, err := domain.MoneyFromDecimal(req.Amount, currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal amount must be positive", apperrors.ErrValidation)
	}

	tax := domain.ZeroMoney(currency)
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
		}
		tax = principal.ApplyRate(*req.TaxRate)
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:      uuid.NewString(),
		Kind:            domain.DocumentKind(req.Kind),
		Description:     req.Description,
		PrincipalAmount: principal,
		TaxAmount:       tax,
		ApprovalState:   domain.PendingApproval,
		PaymentState:    domain.Unpaid,
		InvoiceState:    domain.NotInvoiced,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorActorID,
		},
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("Document created", slog.String("document_id", doc.DocumentID), slog.String("kind", req.Kind))
	return &doc, nil
}

// GetDocumentByID retrieves a document with its ledger.
func (s *lifecycleService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return doc, nil
}

// ListDocuments retrieves a filtered, token-paginated page of documents.
func (s *lifecycleService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) (*dto.ListDocumentsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	filter := portsrepo.DocumentFilter{
		Kind:          domain.DocumentKind(params.Kind),
		ApprovalState: domain.ApprovalState(params.ApprovalState),
	}

	docs, nextToken, err := s.docRepo.ListDocuments(ctx, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list documents from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve documents: %w", err)
	}

	resp := &dto.ListDocumentsResponse{
		Documents: dto.ToDocumentResponses(docs),
		NextToken: nextToken,
	}

	logger.Debug("Documents listed", "count", len(docs))
	return resp, nil
}

// DecideDocument applies the single approve/reject decision to a document.
func (s *lifecycleService) DecideDocument(ctx context.Context, documentID string, req dto.DecideDocumentRequest, actorID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.actorSvc.ResolveRole(ctx, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := s.docRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.docRepo.Rollback(ctx, tx)

	doc, err := s.docRepo.FindDocumentByIDForUpdate(ctx, tx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	if err := s.approvalGate.Decide(doc, actorID, role, domain.ApprovalAction(req.Action), req.Notes, now); err != nil {
		logger.Warn("Decision rejected by approval gate", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.docRepo.RecordDecision(ctx, tx, doc.DocumentID, *doc.ApprovalRecord, doc.ApprovalState); err != nil {
		logger.Error("Failed to record decision", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	if err := s.docRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Document decided", slog.String("document_id", documentID), slog.String("action", req.Action))
	return doc, nil
}

// RegisterPayment appends one evidence-backed payment to the document ledger.
func (s *lifecycleService) RegisterPayment(ctx context.Context, documentID string, req dto.RegisterPaymentRequest, actorID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.actorSvc.ResolveRole(ctx, actorID)
	if err != nil {
		return nil, err
	}

	evidence := domain.EvidenceRef{EvidenceID: req.EvidenceID}
	now := time.Now().UTC()

	tx, err := s.docRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.docRepo.Rollback(ctx, tx)

	doc, err := s.docRepo.FindDocumentByIDForUpdate(ctx, tx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	amount, err := domain.MoneyFromDecimal(req.Amount, doc.PrincipalAmount.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// The evidence check runs inside the gate so the approval-state
	// precondition is reported first: a payment against an undecided or
	// rejected document bounces on that, whatever the evidence looks like.
	evidenceValid := func(ref domain.EvidenceRef) bool {
		return s.evidenceSvc.Validate(ctx, ref) == nil
	}

	record, err := s.ledger.Register(doc, actorID, role, amount, domain.PaymentMethod(req.Method), req.Reference, evidence, evidenceValid, now)
	if err != nil {
		logger.Warn("Payment rejected by ledger", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.docRepo.AppendPayment(ctx, tx, *record, doc.PaymentState); err != nil {
		logger.Error("Failed to append payment", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to append payment: %w", err)
	}

	if err := s.docRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Payment registered",
		slog.String("document_id", documentID),
		slog.String("payment_id", record.PaymentID),
		slog.String("payment_state", string(doc.PaymentState)))
	return doc, nil
}

// EmitInvoice certifies emission eligibility and flips the invoice flag
// exactly once.
func (s *lifecycleService) EmitInvoice(ctx context.Context, documentID string, actorID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.actorSvc.ResolveRole(ctx, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := s.docRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.docRepo.Rollback(ctx, tx)

	doc, err := s.docRepo.FindDocumentByIDForUpdate(ctx, tx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	evidenceValid := func(ref domain.EvidenceRef) bool {
		return s.evidenceSvc.Validate(ctx, ref) == nil
	}

	reference, err := s.invoiceGate.Emit(doc, actorID, role, evidenceValid, now)
	if err != nil {
		logger.Warn("Emission rejected by invoice gate", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.docRepo.MarkInvoiced(ctx, tx, doc.DocumentID, reference, actorID, now); err != nil {
		logger.Error("Failed to mark document invoiced", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to mark document invoiced: %w", err)
	}

	if err := s.docRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Invoice emission certified", slog.String("document_id", documentID), slog.String("invoice_reference", reference))
	return doc, nil
}

// DeleteDocument removes a document, permitted only while it is neither
// approved nor carries any payment. Anything further along must be unwound by
// Finance through compensating entries.
func (s *lifecycleService) DeleteDocument(ctx context.Context, documentID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	role, err := s.actorSvc.ResolveRole(ctx, actorID)
	if err != nil {
		return err
	}
	if _, ok := deleterRoles[role]; !ok {
		return ErrInsufficientRole
	}

	tx, err := s.docRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.docRepo.Rollback(ctx, tx)

	doc, err := s.docRepo.FindDocumentByIDForUpdate(ctx, tx, documentID)
	if err != nil {
		return fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	if doc.ApprovalState == domain.Approved || doc.PaymentState != domain.Unpaid {
		logger.Warn("Deletion refused",
			slog.String("document_id", documentID),
			slog.String("approval_state", string(doc.ApprovalState)),
			slog.String("payment_state", string(doc.PaymentState)))
		return ErrDeletionForbidden
	}

	if err := s.docRepo.DeleteDocument(ctx, tx, documentID); err != nil {
		logger.Error("Failed to delete document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := s.docRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Document deleted", slog.String("document_id", documentID))
	return nil
}
