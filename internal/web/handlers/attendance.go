package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/constants"
	applog "github.com/kozaktomas/face-attendance/internal/log"
)

// AttendancePath is where the attendance endpoint is mounted.
const AttendancePath = "/attendance"

// AttendanceHandler acknowledges attendance submissions without storing them.
type AttendanceHandler struct {
	decoder *schema.Decoder
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler() *AttendanceHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &AttendanceHandler{
		decoder: decoder,
	}
}

// Handle echoes whether a phone number and an image were received. Every
// decodable request gets 200 with success:true; undecodable requests and
// panics get 500 with the error text.
func (h *AttendanceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	logger := applog.With("request_id", chiMiddleware.GetReqID(r.Context()))
	logger.Info("Attendance function triggered")

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		err := fmt.Errorf("panic: %v", rec)
		logger.Error("Attendance handler failed", "error", sanitizeForLog(err.Error()))
		respondJSON(w, http.StatusInternalServerError, attendance.Failure(err))
	}()

	payload, err := h.decodePayload(w, r)
	if err != nil {
		logger.Warn("Could not decode attendance payload", "error", sanitizeForLog(err.Error()))
		respondJSON(w, http.StatusInternalServerError, attendance.Failure(err))
		return
	}

	resp := attendance.Received(payload)
	phone := ""
	if resp.PhoneNumber != nil {
		phone = sanitizeForLog(*resp.PhoneNumber)
	}
	logger.Info("Attendance data received", "phone", phone, "received_image", *resp.ReceivedImage)
	if image := payload.ImageValue(); image != "" {
		if mimeType, data, err := attendance.DecodeDataURI(image); err != nil {
			logger.Debug("Image is not a data URI", "error", sanitizeForLog(err.Error()))
		} else {
			logger.Debug("Image decoded", "mime_type", sanitizeForLog(mimeType), "bytes", len(data))
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// decodePayload reads form posts with gorilla/schema and everything else as JSON.
func (h *AttendanceHandler) decodePayload(w http.ResponseWriter, r *http.Request) (attendance.Payload, error) {
	var p attendance.Payload
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return p, fmt.Errorf("reading form body: %w", err)
		}
		return h.decodeForm(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(constants.MaxBodyBytes); err != nil {
			return p, fmt.Errorf("reading multipart body: %w", err)
		}
		return h.decodeForm(r)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return p, fmt.Errorf("reading request body: %w", err)
	}
	return attendance.ParsePayload(body)
}

func (h *AttendanceHandler) decodeForm(r *http.Request) (attendance.Payload, error) {
	var p attendance.Payload
	if err := h.decoder.Decode(&p, r.PostForm); err != nil {
		return p, &attendance.ValidationError{Field: "body", Reason: fmt.Sprintf("invalid form payload: %v", err)}
	}
	return p, nil
}
