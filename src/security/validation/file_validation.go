package validation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/username/sheetfolio/src/logger"
)

var ErrValidationFailed = errors.New("upload validation failed")

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// allowedClientContentTypes lists, per upload format, the Content-Type values browsers
// and scripts are known to send.
var allowedClientContentTypes = map[string]map[string]bool{
	FormatCSV: {
		"text/csv":                 true,
		"application/csv":          true,
		"application/vnd.ms-excel": true,
		"text/plain":               true,
		"application/octet-stream": true,
		"":                         true,
	},
	FormatXLSX: {
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
		"application/zip":          true,
		"application/octet-stream": true,
		"":                         true,
	},
	FormatJSON: {
		"application/json":         true,
		"text/plain":               true,
		"application/octet-stream": true,
		"":                         true,
	},
}

// allowedDetectedTypes lists what http.DetectContentType reports for each format.
var allowedDetectedTypes = map[string]map[string]bool{
	FormatCSV:  {"text/plain": true, "text/csv": true, "application/octet-stream": true},
	FormatXLSX: {"application/zip": true},
	FormatJSON: {"text/plain": true, "application/json": true},
}

// FormatFromFilename maps a file name to an upload format by extension.
func FormatFromFilename(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: file '%s' must be .csv, .xlsx or .json", ErrValidationFailed, filename)
	}
}

// ValidateClientContentType checks the Content-Type the client declared for a file of the given format.
func ValidateClientContentType(format, contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !allowedClientContentTypes[format][ct] {
		logger.FromContext(context.Background()).Warn("Disallowed client-declared Content-Type", "format", format, "contentType", contentType)
		return fmt.Errorf("%w: client-declared file type '%s' is not allowed for %s upload", ErrValidationFailed, contentType, format)
	}
	return nil
}

// ValidateFileContentByMagicBytes sniffs the first 512 bytes and rewinds the file.
// It returns the detected content type.
func ValidateFileContentByMagicBytes(file io.ReadSeeker, format string) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: file is nil", ErrValidationFailed)
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// Rewind so the parser reads the whole file.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", err)
	}

	detected := http.DetectContentType(buffer[:n])
	detected = strings.ToLower(strings.Split(detected, ";")[0])

	if !allowedDetectedTypes[format][detected] {
		logger.FromContext(context.Background()).Warn("Disallowed detected file content type (magic bytes)", "format", format, "detectedContentType", detected)
		return detected, fmt.Errorf("%w: detected file content type '%s' is not consistent with a %s file", ErrValidationFailed, detected, format)
	}
	return detected, nil
}
