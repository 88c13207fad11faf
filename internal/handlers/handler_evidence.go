package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/clubsalud/findoc_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// evidenceHandler handles voucher uploads. Only the file metadata is kept;
// the engine never inspects the bytes.
type evidenceHandler struct {
	evidenceService portssvc.EvidenceSvcFacade
}

func newEvidenceHandler(es portssvc.EvidenceSvcFacade) *evidenceHandler {
	return &evidenceHandler{evidenceService: es}
}

// registerEvidenceRoutes registers routes related to payment evidence.
func registerEvidenceRoutes(rg *gin.RouterGroup, evidenceService portssvc.EvidenceSvcFacade) {
	h := newEvidenceHandler(evidenceService)

	evidence := rg.Group("/evidence")
	{
		evidence.POST("", h.uploadEvidence)
		evidence.GET("/:id", h.getEvidenceByID)
	}
}

// uploadEvidence godoc
// @Summary Upload payment evidence
// @Description Accepts a voucher file and stores its metadata for later validation
// @Tags evidence
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Voucher file (png, jpeg or pdf)"
// @Success 201 {object} dto.EvidenceResponse
// @Failure 400 {object} ErrorResponse "Missing file or unacceptable type/size"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to store evidence"
// @Security BearerAuth
// @Router /evidence [post]
func (h *evidenceHandler) uploadEvidence(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in evidence upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A 'file' form field is required"})
		return
	}

	req := dto.RegisterEvidenceRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
	}

	logger = logger.With(slog.String("actor_id", actorID), slog.String("file_name", req.FileName))
	logger.Info("Received evidence upload", slog.Int64("size_bytes", req.SizeBytes))

	evidence, err := h.evidenceService.RegisterEvidence(c.Request.Context(), req, actorID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to store evidence")
		return
	}

	logger.Info("Evidence stored", slog.String("evidence_id", evidence.EvidenceID))
	c.JSON(http.StatusCreated, dto.ToEvidenceResponse(evidence))
}

// getEvidenceByID godoc
// @Summary Get evidence metadata
// @Description Retrieves the metadata of a stored voucher
// @Tags evidence
// @Produce json
// @Param id path string true "Evidence ID"
// @Success 200 {object} dto.EvidenceResponse
// @Failure 404 {object} ErrorResponse "Evidence not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve evidence"
// @Security BearerAuth
// @Router /evidence/{id} [get]
func (h *evidenceHandler) getEvidenceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	evidenceID := c.Param("id")
	logger = logger.With(slog.String("evidence_id", evidenceID))

	evidence, err := h.evidenceService.GetEvidenceByID(c.Request.Context(), evidenceID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to retrieve evidence")
		return
	}

	c.JSON(http.StatusOK, dto.ToEvidenceResponse(evidence))
}
