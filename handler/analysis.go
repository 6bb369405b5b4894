package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Vani131975/ai-powered-compliance-auditor/analysis"
	"github.com/Vani131975/ai-powered-compliance-auditor/middleware"
	"github.com/Vani131975/ai-powered-compliance-auditor/model"
	"github.com/Vani131975/ai-powered-compliance-auditor/pkg/logger"
	"github.com/Vani131975/ai-powered-compliance-auditor/service"
)

type AnalysisHandler struct {
	minioService   *service.MinioService
	extractService *service.ExtractService
	pipeline       *analysis.Pipeline
	store          *service.AnalysisStore
}

func NewAnalysisHandler(minioSvc *service.MinioService, extractSvc *service.ExtractService, pipeline *analysis.Pipeline) *AnalysisHandler {
	return &AnalysisHandler{
		minioService:   minioSvc,
		extractService: extractSvc,
		pipeline:       pipeline,
		store:          service.GetAnalysisStore(),
	}
}

var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"txt":  "text/plain",
}

// Upload handles contract file upload and kicks off the analysis run
func (h *AnalysisHandler) Upload(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	// Get file from form
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	format, ok := service.AllowedFormat(header.Filename)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOCX and TXT files are allowed"})
		return
	}

	// Validate content type; browsers often send octet-stream, so sniff PDFs
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypes[format]
	} else if format == "pdf" && !strings.Contains(contentType, "pdf") {
		buffer := make([]byte, 512)
		if _, err := file.Read(buffer); err != nil && err != io.EOF {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		file.Seek(0, io.SeekStart) // Reset file pointer

		detectedType := http.DetectContentType(buffer)
		if !strings.Contains(detectedType, "pdf") && detectedType != "application/octet-stream" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
			return
		}
		contentType = contentTypes["pdf"]
	} else {
		contentType = contentTypes[format]
	}

	analysisID := uuid.New().String()
	record := &model.Analysis{
		ID:        analysisID,
		Filename:  header.Filename,
		FileSize:  header.Size,
		Tenant:    tenant,
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if format == "txt" {
		// TXT decodes locally, no round trip through object storage
		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
			return
		}
		text, err := service.DecodeTextFile(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is not valid text"})
			return
		}

		h.store.Save(record)
		go h.runAnalysis(record, text, "", format)
	} else {
		objectName := fmt.Sprintf("%s/%s/%s", tenant, analysisID, header.Filename)

		err = h.minioService.UploadFile(c.Request.Context(), objectName, file, header.Size, contentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file: " + err.Error()})
			return
		}

		fileURL, err := h.minioService.GetPresignedURL(c.Request.Context(), objectName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL: " + err.Error()})
			return
		}

		record.FileURL = fileURL
		h.store.Save(record)
		go h.runAnalysis(record, "", fileURL, format)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       analysisID,
		"filename": header.Filename,
		"status":   model.StatusPending,
	})
}

// runAnalysis drives one analysis asynchronously: text extraction when
// needed, then the clause pipeline. Failures land in the store record.
func (h *AnalysisHandler) runAnalysis(record *model.Analysis, text, fileURL, format string) {
	ctx := context.WithValue(context.Background(), logger.DocumentIDKey, record.ID)
	ctx = context.WithValue(ctx, logger.TenantKey, record.Tenant)

	h.store.UpdateStatus(record.ID, model.StatusProcessing, "")
	logger.Info(ctx, "analysis started", "filename", record.Filename, "format", format)

	if text == "" {
		extracted, err := h.extractService.ExtractText(ctx, fileURL, format)
		if err != nil {
			logger.Error(ctx, "text extraction failed", "error", err)
			h.store.UpdateStatus(record.ID, model.StatusFailed, "Text extraction failed: "+err.Error())
			return
		}
		text = extracted
	}

	doc := model.Document{
		Text:       text,
		Size:       record.FileSize,
		Filename:   record.Filename,
		UploadedAt: record.CreatedAt,
	}

	report, err := h.pipeline.Analyze(ctx, doc)
	if err != nil {
		logger.Error(ctx, "analysis failed", "error", err)
		h.store.UpdateStatus(record.ID, model.StatusFailed, err.Error())
		return
	}

	h.store.SetReport(record.ID, report)
	logger.Info(ctx, "analysis completed",
		"total_clauses", report.TotalClauses,
		"compliance_score", report.ComplianceScore,
	)
}

// List returns all analyses for the current tenant
func (h *AnalysisHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	analyses := h.store.GetByTenant(tenant)

	// Return without the report body for list view
	result := make([]gin.H, len(analyses))
	for i, a := range analyses {
		entry := gin.H{
			"id":         a.ID,
			"filename":   a.Filename,
			"status":     a.Status,
			"created_at": a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at": a.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if a.Report != nil {
			entry["compliance_score"] = a.Report.ComplianceScore
			entry["total_clauses"] = a.Report.TotalClauses
		}
		result[i] = entry
	}

	c.JSON(http.StatusOK, gin.H{"analyses": result})
}

// Get returns a single analysis with its full report
func (h *AnalysisHandler) Get(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	a := h.store.Get(id)
	if a == nil || a.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// GetStatus returns the processing status of an analysis
func (h *AnalysisHandler) GetStatus(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	a := h.store.Get(id)
	if a == nil || a.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        a.ID,
		"status":    a.Status,
		"error_msg": a.ErrorMsg,
	})
}

// Delete deletes an analysis
func (h *AnalysisHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	a := h.store.Get(id)
	if a == nil || a.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	h.store.Delete(id)

	c.JSON(http.StatusOK, gin.H{"message": "Analysis deleted"})
}

type FeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

// Feedback records a user comment on an analysis result
func (h *AnalysisHandler) Feedback(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	a := h.store.Get(id)
	if a == nil || a.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	h.store.AddFeedback(model.Feedback{
		AnalysisID: id,
		Username:   middleware.GetUsername(c),
		Message:    req.Message,
		CreatedAt:  time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Feedback recorded"})
}
