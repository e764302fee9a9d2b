package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/sheetfolio/src/logger"
	"github.com/username/sheetfolio/src/utils"
)

// sendJSONWithETag writes data as JSON with a strong ETag, answering 304 when the
// client already holds the same representation.
func sendJSONWithETag(w http.ResponseWriter, r *http.Request, data any, label string) {
	log := logger.FromContext(r.Context())

	currentETag, etagErr := utils.GenerateETag(data)
	if etagErr != nil {
		log.Error("Failed to generate ETag", "payload", label, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("\"%s\"", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				log.Debug("ETag match", "payload", label, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		if clientETag != "" {
			log.Debug("ETag mismatch", "payload", label, "clientETags", clientETag, "serverETag", quotedETag)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Error encoding JSON response", "payload", label, "error", err)
	}
}
