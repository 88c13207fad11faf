package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/clubsalud/findoc_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for the document lifecycle.
type documentHandler struct {
	lifecycleService portssvc.LifecycleSvcFacade
}

func newDocumentHandler(ls portssvc.LifecycleSvcFacade) *documentHandler {
	return &documentHandler{lifecycleService: ls}
}

// registerDocumentRoutes registers routes for documents and their lifecycle commands.
func registerDocumentRoutes(rg *gin.RouterGroup, lifecycleService portssvc.LifecycleSvcFacade) {
	h := newDocumentHandler(lifecycleService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:id", h.getDocumentByID)
		documents.POST("/:id/decision", h.decideDocument)
		documents.POST("/:id/payments", h.registerPayment)
		documents.POST("/:id/invoice", h.emitInvoice)
		documents.DELETE("/:id", h.deleteDocument)
	}
}

// createDocument godoc
// @Summary Create a financial document
// @Description Registers a new monetary obligation in pending approval state
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Caller may not create documents"
// @Failure 500 {object} ErrorResponse "Failed to create document"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("kind", req.Kind))
	logger.Info("Received request to create document")

	doc, err := h.lifecycleService.CreateDocument(c.Request.Context(), req, actorID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to create document")
		return
	}

	logger.Info("Document created", slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List financial documents
// @Description Retrieves a filtered, token-paginated page of documents
// @Tags documents
// @Produce json
// @Param kind query string false "Filter by document kind"
// @Param approvalState query string false "Filter by approval state"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Failed to list documents"
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.lifecycleService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getDocumentByID godoc
// @Summary Get a document
// @Description Retrieves a document with its payment ledger and derived balances
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve document"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocumentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")
	logger = logger.With(slog.String("document_id", documentID))

	doc, err := h.lifecycleService.GetDocumentByID(c.Request.Context(), documentID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// decideDocument godoc
// @Summary Decide a document
// @Description Applies the single approve or reject decision to a pending document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param decision body dto.DecideDocumentRequest true "Decision details"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input or rejection without notes"
// @Failure 403 {object} ErrorResponse "Caller may not decide documents"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 409 {object} ErrorResponse "Document already decided"
// @Failure 500 {object} ErrorResponse "Failed to decide document"
// @Security BearerAuth
// @Router /documents/{id}/decision [post]
func (h *documentHandler) decideDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	var req dto.DecideDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DecideDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("document_id", documentID), slog.String("action", req.Action))
	logger.Info("Received request to decide document")

	doc, err := h.lifecycleService.DecideDocument(c.Request.Context(), documentID, req, actorID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to decide document")
		return
	}

	logger.Info("Document decision recorded", slog.String("approval_state", string(doc.ApprovalState)))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// registerPayment godoc
// @Summary Register a payment
// @Description Appends one evidence-backed payment to an approved document's ledger
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param payment body dto.RegisterPaymentRequest true "Payment details"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Caller may not register payments"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 409 {object} ErrorResponse "Document not approved or payment exceeds balance"
// @Failure 422 {object} ErrorResponse "Evidence missing or invalid"
// @Failure 500 {object} ErrorResponse "Failed to register payment"
// @Security BearerAuth
// @Router /documents/{id}/payments [post]
func (h *documentHandler) registerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("document_id", documentID))
	logger.Info("Received request to register payment", slog.String("amount", req.Amount.String()))

	doc, err := h.lifecycleService.RegisterPayment(c.Request.Context(), documentID, req, actorID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to register payment")
		return
	}

	logger.Info("Payment registered", slog.String("payment_state", string(doc.PaymentState)))
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// emitInvoice godoc
// @Summary Emit an invoice
// @Description Certifies emission eligibility and flips the invoice flag exactly once
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.EmitInvoiceResponse
// @Failure 403 {object} ErrorResponse "Caller may not emit invoices"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 409 {object} ErrorResponse "Document not approved, not fully paid, or already invoiced"
// @Failure 422 {object} ErrorResponse "Ledger evidence missing or invalid"
// @Failure 500 {object} ErrorResponse "Failed to emit invoice"
// @Security BearerAuth
// @Router /documents/{id}/invoice [post]
func (h *documentHandler) emitInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("document_id", documentID))
	logger.Info("Received request to emit invoice")

	doc, err := h.lifecycleService.EmitInvoice(c.Request.Context(), documentID, actorID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to emit invoice")
		return
	}

	logger.Info("Invoice emitted", slog.String("invoice_reference", *doc.InvoiceReference))
	c.JSON(http.StatusOK, dto.EmitInvoiceResponse{
		DocumentID:       doc.DocumentID,
		InvoiceReference: *doc.InvoiceReference,
	})
}

// deleteDocument godoc
// @Summary Delete a document
// @Description Removes a document that is neither approved nor carries payments
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 204 "Document deleted"
// @Failure 403 {object} ErrorResponse "Caller may not delete documents"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 409 {object} ErrorResponse "Document is approved or has payments"
// @Failure 500 {object} ErrorResponse "Failed to delete document"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("document_id", documentID))
	logger.Info("Received request to delete document")

	if err := h.lifecycleService.DeleteDocument(c.Request.Context(), documentID, actorID); err != nil {
		respondLifecycleError(c, logger, err, "Failed to delete document")
		return
	}

	logger.Info("Document deleted")
	c.Status(http.StatusNoContent)
}
