package handlers

import (
	"bufio"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogsRouter(dir string) *gin.Engine {
	router := gin.New()
	router.Use(withSession)
	router.POST("/api/v1/logs", NewClientLogsHandler(dir).Receive)
	return router
}

func readClientLog(t *testing.T, dir string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, clientLogFile))
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestClientLogsHandler_Receive(t *testing.T) {
	dir := t.TempDir()
	router := newLogsRouter(dir)

	w := postJSON(router, "/api/v1/logs", `{"logs":[{"timestamp":"2025-06-01T07:00:00Z","level":"warn","message":"clipboard write failed","context":{"reason":"NotAllowedError","level":"spoofed"}}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"received":1}`, w.Body.String())

	lines := readClientLog(t, dir)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, "clipboard write failed", lines[0]["msg"])
	assert.Equal(t, "browser", lines[0]["service"])
	assert.Equal(t, "NotAllowedError", lines[0]["reason"])
	assert.Equal(t, testSessionID, lines[0]["session_id"])
}

func TestClientLogsHandler_Appends(t *testing.T) {
	dir := t.TempDir()
	router := newLogsRouter(dir)

	for _, msg := range []string{"first", "second"} {
		w := postJSON(router, "/api/v1/logs", `{"logs":[{"level":"info","message":"`+msg+`"}]}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	lines := readClientLog(t, dir)
	require.Len(t, lines, 2)
	assert.Equal(t, "first", lines[0]["msg"])
	assert.Equal(t, "second", lines[1]["msg"])
}

func TestClientLogsHandler_RejectsInvalidBatch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty batch", body: `{"logs":[]}`},
		{name: "unknown level", body: `{"logs":[{"level":"fatal","message":"x"}]}`},
		{name: "missing message", body: `{"logs":[{"level":"info"}]}`},
		{name: "not json", body: `logs`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := postJSON(newLogsRouter(dir), "/api/v1/logs", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			_, err := os.Stat(filepath.Join(dir, clientLogFile))
			assert.True(t, os.IsNotExist(err))
		})
	}
}
