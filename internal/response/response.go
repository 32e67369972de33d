// file: internal/response/response.go
package response

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"fresherjobs/internal/contextutils"
	"fresherjobs/internal/services"
)

// APIResponse is the envelope every JSON endpoint writes.
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
	Version   string       `json:"version,omitempty"`
}

// ErrorDetail carries structured error information to clients.
type ErrorDetail struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Config controls envelope decoration and error masking.
type Config struct {
	APIVersion         string
	IncludeRequestID   bool
	IncludeTimestamp   bool
	MaskInternalErrors bool
}

// DefaultConfig returns production-safe response settings.
func DefaultConfig() *Config {
	return &Config{
		APIVersion:         "v1",
		IncludeRequestID:   true,
		IncludeTimestamp:   true,
		MaskInternalErrors: true,
	}
}

// Builder writes API responses with consistent envelopes and logging.
type Builder struct {
	config *Config
	logger *zap.Logger
}

// NewBuilder creates a response builder.
func NewBuilder(config *Config, logger *zap.Logger) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	return &Builder{config: config, logger: logger}
}

// WriteSuccess writes a 200 response with the given payload.
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.writeJSON(w, r, http.StatusOK, &APIResponse{Success: true, Data: data})
}

// WriteCreated writes a 201 response with the given payload.
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}) {
	b.writeJSON(w, r, http.StatusCreated, &APIResponse{Success: true, Data: data})
}

// WriteNoContent writes a 204 response with no body.
func (b *Builder) WriteNoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error response, deriving the status code from the error.
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	detail := b.convertError(err)
	statusCode := b.statusCodeFor(err)
	b.logError(r.Context(), err, detail, statusCode)
	b.writeJSON(w, r, statusCode, &APIResponse{Success: false, Error: detail})
}

func (b *Builder) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, resp *APIResponse) {
	if b.config.IncludeRequestID {
		resp.RequestID = contextutils.GetRequestID(r.Context())
	}
	if b.config.IncludeTimestamp {
		resp.Timestamp = time.Now().Unix()
	}
	resp.Version = b.config.APIVersion

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.logger.Error("Failed to encode response",
			zap.String("request_id", resp.RequestID),
			zap.Error(err),
		)
	}
}

func (b *Builder) convertError(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	if serviceErr := services.GetServiceError(err); serviceErr != nil {
		detail := &ErrorDetail{
			Type:    serviceErr.Type,
			Message: serviceErr.Message,
			Code:    serviceErr.Code,
			Details: serviceErr.Details,
		}
		if b.config.MaskInternalErrors && serviceErr.Type == "INTERNAL_ERROR" {
			detail.Message = "An internal error occurred"
			detail.Details = nil
		}
		return detail
	}

	message := err.Error()
	if b.config.MaskInternalErrors {
		message = "An unexpected error occurred"
	}
	return &ErrorDetail{
		Type:    "INTERNAL_ERROR",
		Message: message,
	}
}

func (b *Builder) statusCodeFor(err error) int {
	if serviceErr := services.GetServiceError(err); serviceErr != nil {
		return serviceErr.GetStatusCode()
	}
	return http.StatusInternalServerError
}

func (b *Builder) logError(ctx context.Context, err error, detail *ErrorDetail, statusCode int) {
	requestID := contextutils.GetRequestID(ctx)

	if statusCode >= http.StatusInternalServerError {
		b.logger.Error("Internal error",
			zap.String("request_id", requestID),
			zap.String("error_type", detail.Type),
			zap.String("error_message", detail.Message),
			zap.Error(err),
		)
		return
	}

	b.logger.Warn("Request error",
		zap.String("request_id", requestID),
		zap.String("error_type", detail.Type),
		zap.String("error_code", detail.Code),
		zap.String("error_message", detail.Message),
	)
}
