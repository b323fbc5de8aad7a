package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/config"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Camera.Width = 640
	cfg.Camera.Height = 480
	cfg.Camera.Quality = 92
	return cfg
}

// postAttendance sends body to the attendance handler with the given content type.
func postAttendance(t *testing.T, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, AttendancePath, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	recorder := httptest.NewRecorder()
	NewAttendanceHandler().Handle(recorder, req)
	return recorder
}

// postJSON sends a JSON string to the attendance handler.
func postJSON(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	return postAttendance(t, "application/json", strings.NewReader(body))
}

// decodeAttendance parses the handler response into a generic map so absent keys can be checked.
func decodeAttendance(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", recorder.Body.String(), err)
	}
	return result
}

// assertFailure checks the structured failure response.
func assertFailure(t *testing.T, recorder *httptest.ResponseRecorder) {
	t.Helper()
	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", recorder.Code)
	}
	result := decodeAttendance(t, recorder)
	if result["success"] != false {
		t.Errorf("expected success false, got %v", result["success"])
	}
	if result["message"] != attendance.MessageError {
		t.Errorf("expected message %q, got %v", attendance.MessageError, result["message"])
	}
	if text, _ := result["error"].(string); text == "" {
		t.Errorf("expected non-empty error, got %v", result["error"])
	}
}
