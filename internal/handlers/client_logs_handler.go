package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/homeservices/site/internal/middleware"
	"github.com/homeservices/site/pkg/logger"
	"go.uber.org/zap"
)

const clientLogFile = "browser.log"

// ClientLogsHandler appends problems the page script runs into, such as a
// refused clipboard write, to a JSON lines file next to the server log.
type ClientLogsHandler struct {
	logDir string
	mu     sync.Mutex
}

type ClientLogEntry struct {
	Timestamp string                 `json:"timestamp" binding:"max=64"`
	Level     string                 `json:"level" binding:"required,oneof=debug info warn error"`
	Message   string                 `json:"message" binding:"required,max=500"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

type ClientLogBatchRequest struct {
	Logs []ClientLogEntry `json:"logs" binding:"required,min=1,max=20,dive"`
}

func NewClientLogsHandler(logDir string) *ClientLogsHandler {
	return &ClientLogsHandler{logDir: logDir}
}

func (h *ClientLogsHandler) Receive(c *gin.Context) {
	var req ClientLogBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// the session is optional here, a report from a stale page still counts
	sessionID, _ := middleware.GetSessionID(c) //nolint:errcheck

	if err := h.write(sessionID, req.Logs); err != nil {
		logger.Error("Failed to write client logs", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		return
	}

	logger.Debug("Received client logs",
		zap.Int("count", len(req.Logs)),
		zap.String("session_id", sessionID),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Logs)})
}

func (h *ClientLogsHandler) write(sessionID string, entries []ClientLogEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(h.logDir, clientLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open client log file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, entry := range entries {
		line := make(map[string]interface{}, len(entry.Context)+5)
		// context goes first so it cannot overwrite the standard keys
		for k, v := range entry.Context {
			line[k] = v
		}
		line["ts"] = entry.Timestamp
		line["level"] = entry.Level
		line["msg"] = entry.Message
		line["service"] = "browser"
		if sessionID != "" {
			line["session_id"] = sessionID
		}

		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("failed to encode client log entry: %w", err)
		}
	}

	return nil
}
