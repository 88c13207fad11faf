package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/clubsalud/findoc_backend/internal/core/ports/services"
	"github.com/clubsalud/findoc_backend/internal/dto"
	"github.com/clubsalud/findoc_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// actorHandler handles HTTP requests for the actor registry.
type actorHandler struct {
	actorService portssvc.ActorSvcFacade
}

func newActorHandler(as portssvc.ActorSvcFacade) *actorHandler {
	return &actorHandler{actorService: as}
}

// registerActorRoutes registers routes related to actors.
func registerActorRoutes(rg *gin.RouterGroup, actorService portssvc.ActorSvcFacade) {
	h := newActorHandler(actorService)

	actors := rg.Group("/actors")
	{
		actors.POST("", h.createActor)
		actors.GET("", h.listActors)
		actors.GET("/:id", h.getActorByID)
	}
}

// createActor godoc
// @Summary Create a new actor
// @Description Registers a console actor. Restricted to SuperAdmin callers.
// @Tags actors
// @Accept json
// @Produce json
// @Param actor body dto.CreateActorRequest true "Actor details"
// @Success 201 {object} dto.ActorResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Caller may not create actors"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Failed to create actor"
// @Security BearerAuth
// @Router /actors [post]
func (h *actorHandler) createActor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateActor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorActorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Creator actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_actor_id", creatorActorID))
	logger.Info("Received request to create actor", slog.String("role", req.Role))

	actor, err := h.actorService.CreateActor(c.Request.Context(), req, creatorActorID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to create actor")
		return
	}

	logger.Info("Actor created", slog.String("actor_id", actor.ActorID))
	c.JSON(http.StatusCreated, dto.ToActorResponse(actor))
}

// listActors godoc
// @Summary List actors
// @Description Retrieves a page of active actors
// @Tags actors
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.ActorResponse
// @Failure 500 {object} ErrorResponse "Failed to list actors"
// @Security BearerAuth
// @Router /actors [get]
func (h *actorHandler) listActors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	actors, err := h.actorService.ListActors(c.Request.Context(), limit, offset)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to list actors")
		return
	}

	c.JSON(http.StatusOK, dto.ToActorResponses(actors))
}

// getActorByID godoc
// @Summary Get an actor
// @Description Retrieves one actor by its identifier
// @Tags actors
// @Produce json
// @Param id path string true "Actor ID"
// @Success 200 {object} dto.ActorResponse
// @Failure 404 {object} ErrorResponse "Actor not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve actor"
// @Security BearerAuth
// @Router /actors/{id} [get]
func (h *actorHandler) getActorByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID := c.Param("id")
	logger = logger.With(slog.String("actor_id", actorID))

	actor, err := h.actorService.GetActorByID(c.Request.Context(), actorID)
	if err != nil {
		respondLifecycleError(c, logger, err, "Failed to retrieve actor")
		return
	}

	c.JSON(http.StatusOK, dto.ToActorResponse(actor))
}
