package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clinicprime/notelens/internal/catalog"
	"github.com/clinicprime/notelens/internal/domain"
	"github.com/clinicprime/notelens/internal/usecase"
)

// Version is reported by the health check
var Version = "1.0.0"

// MaxBatchNotes bounds the size of a single batch request
const MaxBatchNotes = 1000

// Handler holds dependencies for HTTP handlers
type Handler struct {
	notes        *usecase.NoteService
	batch        *usecase.BatchService
	catalog      *catalog.Catalog
	sourceFields []string
	logger       *zap.SugaredLogger
}

// NewHandler creates a new HTTP handler. sourceFields names, in order, the
// columns concatenated when a request sends a column map instead of text.
func NewHandler(
	notes *usecase.NoteService,
	batch *usecase.BatchService,
	cat *catalog.Catalog,
	sourceFields []string,
	logger *zap.SugaredLogger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		notes:        notes,
		batch:        batch,
		catalog:      cat,
		sourceFields: sourceFields,
		logger:       logger,
	}
}

// resolveNoteRequest is the body of POST /api/v1/notes/resolve
type resolveNoteRequest struct {
	Text    string               `json:"text"`
	Fields  []sourceFieldRequest `json:"fields" binding:"omitempty,dive"`
	Columns map[string]string    `json:"columns"`
}

type sourceFieldRequest struct {
	Name string `json:"name" binding:"required"`
	Text string `json:"text"`
}

// batchNoteRequest is one note of POST /api/v1/notes/resolve/batch
type batchNoteRequest struct {
	ID      string               `json:"id" binding:"required"`
	Text    string               `json:"text"`
	Fields  []sourceFieldRequest `json:"fields" binding:"omitempty,dive"`
	Columns map[string]string    `json:"columns"`
}

type resolveBatchRequest struct {
	Notes []batchNoteRequest `json:"notes" binding:"required,min=1,dive"`
}

type resolveBatchResponse struct {
	Items []domain.BatchItem `json:"items"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "notelens",
		"version": Version,
	})
}

// ResolveNote handles single note resolution requests
func (h *Handler) ResolveNote(c *gin.Context) {
	var req resolveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.notes.ResolveNote(c.Request.Context(), &domain.ResolveRequest{
		Text:   req.Text,
		Fields: h.sourceFieldsOf(req.Fields, req.Columns),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResolveBatch handles batch resolution requests; items come back in request order
func (h *Handler) ResolveBatch(c *gin.Context) {
	var req resolveBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if len(req.Notes) > MaxBatchNotes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("batch exceeds %d notes", MaxBatchNotes)})
		return
	}

	records := make([]domain.NoteRecord, 0, len(req.Notes))
	for _, note := range req.Notes {
		fields := h.sourceFieldsOf(note.Fields, note.Columns)
		if len(fields) == 0 {
			fields = []domain.SourceField{{Name: "text", Text: note.Text}}
		}
		records = append(records, domain.NoteRecord{ID: note.ID, Fields: fields})
	}

	items, err := h.batch.ResolveBatch(c.Request.Context(), records)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resolveBatchResponse{Items: items})
}

// GetCatalog describes the active rule catalog
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Describe())
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "request cancelled"})
	default:
		h.logger.Errorw("resolution failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// sourceFieldsOf prefers explicit fields; otherwise it picks the configured
// source columns out of the column map, in configured order, skipping absent ones.
func (h *Handler) sourceFieldsOf(fields []sourceFieldRequest, columns map[string]string) []domain.SourceField {
	if len(fields) > 0 {
		out := make([]domain.SourceField, 0, len(fields))
		for _, f := range fields {
			out = append(out, domain.SourceField{Name: f.Name, Text: f.Text})
		}
		return out
	}

	if len(columns) == 0 {
		return nil
	}
	var out []domain.SourceField
	for _, name := range h.sourceFields {
		if text, ok := columns[name]; ok {
			out = append(out, domain.SourceField{Name: name, Text: text})
		}
	}
	return out
}
