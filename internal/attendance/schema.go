// Package attendance defines the wire schema shared by the capture client and
// the attendance endpoint.
package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	// MessageReceived is returned by the endpoint for every decodable request.
	MessageReceived = "Function received data successfully!"
	// MessageError is returned by the endpoint when the request cannot be handled.
	MessageError = "Error in function."
)

// Request is the body the capture client sends.
type Request struct {
	Image string `json:"image"`
	Phone string `json:"phone"`
}

// Validate checks the client-side invariant: a phone number must be present.
func (r Request) Validate() error {
	if NormalizePhone(r.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	return nil
}

// Payload is what the endpoint reads from a request body.
// Pointers distinguish absent fields from empty ones.
type Payload struct {
	PhoneNumber *string `json:"phoneNumber" schema:"phoneNumber"`
	FaceImage   *string `json:"faceImage" schema:"faceImage"`

	// Field names used by the capture client.
	Phone *string `json:"phone" schema:"phone"`
	Image *string `json:"image" schema:"image"`
}

// PhoneValue returns phoneNumber, falling back to phone. Nil when neither was sent.
// Bodies shaped like the capture client's {image, phone} are therefore echoed
// with their phone and image, where a phoneNumber/faceImage-only reader would
// report no phone and receivedImage:false.
func (p Payload) PhoneValue() *string {
	if p.PhoneNumber != nil {
		return p.PhoneNumber
	}
	return p.Phone
}

// ImageValue returns faceImage, falling back to image. Empty when neither was sent.
func (p Payload) ImageValue() string {
	switch {
	case p.FaceImage != nil && *p.FaceImage != "":
		return *p.FaceImage
	case p.Image != nil:
		return *p.Image
	}
	return ""
}

// HasImage reports whether a non-empty image field was sent under either name.
func (p Payload) HasImage() bool {
	return (p.FaceImage != nil && *p.FaceImage != "") || (p.Image != nil && *p.Image != "")
}

// ParsePayload decodes a JSON request body. An empty body, a JSON null and
// anything that is not an object are rejected with a *ValidationError.
func ParsePayload(body []byte) (Payload, error) {
	var p Payload
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return p, &ValidationError{Field: "body", Reason: "request body is required"}
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return p, &ValidationError{Field: "body", Reason: fmt.Sprintf("invalid JSON payload: %v", err)}
	}
	return p, nil
}

// Response is the endpoint acknowledgment. The success shape carries
// PhoneNumber and ReceivedImage, the failure shape carries Error.
type Response struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	PhoneNumber   *string `json:"phoneNumber,omitempty"`
	ReceivedImage *bool   `json:"receivedImage,omitempty"`
	Error         string  `json:"error,omitempty"`
}

// Received builds the echo acknowledgment for a decoded payload.
func Received(p Payload) Response {
	received := p.HasImage()
	return Response{
		Success:       true,
		Message:       MessageReceived,
		PhoneNumber:   p.PhoneValue(),
		ReceivedImage: &received,
	}
}

// Failure builds the failure acknowledgment, exposing the error text.
func Failure(err error) Response {
	text := "unknown error"
	if err != nil && err.Error() != "" {
		text = err.Error()
	}
	return Response{
		Success: false,
		Message: MessageError,
		Error:   text,
	}
}
