package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docuquery/internal/app"
	"docuquery/internal/pkg/pdfextract"
	"docuquery/internal/transport/http/response"
)

type DocumentHandler struct {
	documentService *app.DocumentService
	maxUploadBytes  int64
}

type SubmitDocumentRequest struct {
	Name    string `json:"name"`
	Content string `json:"content" binding:"required"`
}

func NewDocumentHandler(documentService *app.DocumentService, maxUploadMB int) *DocumentHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  int64(maxUploadMB) << 20,
	}
}

// Submit accepts raw text content and schedules the processing pipeline.
func (h *DocumentHandler) Submit(c *gin.Context) {
	var req SubmitDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.documentService.Submit(app.SubmitInput{
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "submit document failed")
		}
		return
	}

	response.Accepted(c, result)
}

// Upload accepts a multipart form with "file" (PDF) and optional "name",
// extracts text and schedules the processing pipeline.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "file too large")
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	text, err := pdfextract.ExtractText(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to extract text from PDF: "+err.Error())
		return
	}
	if strings.TrimSpace(text) == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "PDF contains no extractable text")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	result, err := h.documentService.Submit(app.SubmitInput{
		Name:    name,
		Content: text,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "submit document failed")
		}
		return
	}

	response.Accepted(c, result)
}

func (h *DocumentHandler) List(c *gin.Context) {
	response.OK(c, h.documentService.ListDocuments())
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documentService.GetDocument(c.Param("id"))
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	response.OK(c, doc)
}

// TaskStatus returns the job tracker snapshot for a task id.
func (h *DocumentHandler) TaskStatus(c *gin.Context) {
	snapshot, err := h.documentService.GetTask(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrTaskNotFound):
			response.Error(c, http.StatusNotFound, response.CodeTaskNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get task status failed")
		}
		return
	}
	response.OK(c, snapshot)
}

func (h *DocumentHandler) Summary(c *gin.Context) {
	summary, err := h.documentService.Summary(c.Param("id"))
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	response.OK(c, gin.H{"summary": summary})
}

func (h *DocumentHandler) Search(c *gin.Context) {
	maxResults := 0
	if raw := c.Query("max_results"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			maxResults = parsed
		}
	}

	results, err := h.documentService.Search(c.Param("id"), c.Query("q"), maxResults)
	if err != nil {
		writeDocumentError(c, err)
		return
	}
	response.OK(c, gin.H{"results": results, "total": len(results)})
}

func writeDocumentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrDocumentNotFound):
		response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "document lookup failed")
	}
}
