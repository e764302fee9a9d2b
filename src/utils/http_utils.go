package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/username/sheetfolio/src/logger"
)

// GenerateETag hashes the JSON encoding of data. Equal payloads give equal tags,
// so row order changes in a sheet change the tag too.
func GenerateETag(data any) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data for ETag generation: %w", err)
	}
	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:]), nil
}

// SendJSONError writes {"error": message} with the given status.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if logger.L != nil {
		logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	}
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil && logger.L != nil {
		logger.L.Error("Failed to encode JSON error", "error", err)
	}
}
