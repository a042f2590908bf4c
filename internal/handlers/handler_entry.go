package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/staffbook/staff_ledger_app/internal/apperrors"
	"github.com/staffbook/staff_ledger_app/internal/core/domain"
	portssvc "github.com/staffbook/staff_ledger_app/internal/core/ports/services"
	"github.com/staffbook/staff_ledger_app/internal/dto"
	"github.com/staffbook/staff_ledger_app/internal/middleware"
	"github.com/staffbook/staff_ledger_app/internal/utils/compensation"
)

// entryHandler handles HTTP requests related to ledger entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// newEntryHandler creates a new entryHandler.
func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

// createEntry godoc
// @Summary Create a ledger entry
// @Description Records a daily pay, bonus, advance, shortage or expense entry for a collaborator
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   collaboratorID path string true "Collaborator ID"
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse "The created entry"
// @Failure 400 {object} map[string]string "Invalid request format or amounts"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /collaborators/{collaboratorID}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collaboratorID := c.Param("collaboratorID")

	createReq := dto.CreateEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), collaboratorID, createReq, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry, compensation.Contribution(*entry)))
}

// getEntry godoc
// @Summary Get a ledger entry
// @Description Retrieves a single entry of a collaborator by its ID
// @Tags entries
// @Produce  json
// @Param   collaboratorID path string true "Collaborator ID"
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "The entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /collaborators/{collaboratorID}/entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collaboratorID := c.Param("collaboratorID")
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), collaboratorID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry, compensation.Contribution(*entry)))
}

// listEntries godoc
// @Summary List a collaborator's ledger entries
// @Description Retrieves a paginated list of entries, optionally filtered by payment state and date range
// @Tags entries
// @Produce  json
// @Param   collaboratorID path string true "Collaborator ID"
// @Param   state query string false "Filter by payment state (PENDING or PAID)"
// @Param   from query string false "Start of date range (RFC3339)"
// @Param   to query string false "End of date range (RFC3339)"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListEntriesResponse "Entries and next page token"
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /collaborators/{collaboratorID}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	collaboratorID := c.Param("collaboratorID")

	params, err := parseListEntriesParams(c)
	if err != nil {
		logger.Warn("Invalid entry listing filters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, nextToken, err := h.entryService.ListEntries(c.Request.Context(), collaboratorID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i], compensation.Contribution(entries[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func parseListEntriesParams(c *gin.Context) (dto.ListEntriesParams, error) {
	params := dto.ListEntriesParams{}

	if state := c.Query("state"); state != "" {
		st := domain.PaymentState(state)
		params.State = &st
	}
	var err error
	if params.From, err = parseTimeQuery(c, "from"); err != nil {
		return params, err
	}
	if params.To, err = parseTimeQuery(c, "to"); err != nil {
		return params, err
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return params, errors.New("invalid limit parameter")
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	return params, nil
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		// Accept bare dates as well.
		t, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, errors.New("invalid " + name + " parameter, expected RFC3339 or YYYY-MM-DD")
		}
	}
	return &t, nil
}

// registerEntryRoutes registers entry specific routes under a collaborator.
func registerEntryRoutes(group *gin.RouterGroup, entryService portssvc.EntrySvcFacade, mutationLimiter gin.HandlerFunc) {
	h := newEntryHandler(entryService)

	entries := group.Group("/collaborators/:collaboratorID/entries")
	entries.POST("", mutationLimiter, h.createEntry)
	entries.GET("", h.listEntries)
	entries.GET("/:entryID", h.getEntry)
}
