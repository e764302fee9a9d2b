package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/parsers"
	"github.com/username/sheetfolio/src/security/validation"
	"github.com/username/sheetfolio/src/services"
	"github.com/username/sheetfolio/src/utils"
)

const DefaultMaxUploadSizeBytes = 10 * 1024 * 1024

type UploadHandler struct {
	uploadService      services.UploadService
	maxUploadSizeBytes int64
}

func NewUploadHandler(service services.UploadService, maxUploadSizeBytes int64) *UploadHandler {
	if maxUploadSizeBytes <= 0 {
		maxUploadSizeBytes = DefaultMaxUploadSizeBytes
	}
	return &UploadHandler{
		uploadService:      service,
		maxUploadSizeBytes: maxUploadSizeBytes,
	}
}

// HandleUpload normalizes an uploaded CSV, XLSX or JSON sheet. ?kind= picks the
// record type and defaults to transactions.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	limitMB := h.maxUploadSizeBytes / (1024 * 1024)

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = parsers.KindTransactions
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSizeBytes+1024*1024)
	if err := r.ParseMultipartForm(h.maxUploadSizeBytes); err != nil {
		log.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.maxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to parse form or request too large (max %d MB)", limitMB), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		log.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > h.maxUploadSizeBytes {
		log.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", h.maxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", limitMB), http.StatusBadRequest)
		return
	}

	format, err := validation.FormatFromFilename(fileHeader.Filename)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(format, clientContentType); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	detectedContentType, err := validation.ValidateFileContentByMagicBytes(file, format)
	if err != nil {
		log.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Info("Processing upload request", "filename", fileHeader.Filename, "kind", kind, "clientType", clientContentType, "detectedType", detectedContentType)

	result, err := h.uploadService.ProcessUpload(file, fileHeader.Filename, kind)
	if err != nil {
		if errors.Is(err, services.ErrParsingFailed) {
			log.Warn("Upload processing failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, fmt.Sprintf("Error parsing file: %v", err), http.StatusBadRequest)
		} else {
			log.Error("Internal error processing upload", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "An internal error occurred while processing the file. Please try again later.", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Error("Error encoding JSON response for upload result", "error", err)
	}
}
