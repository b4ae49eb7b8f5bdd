package middleware

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/datawarden/datawarden/internal/log"
	"github.com/datawarden/datawarden/internal/tracing"
)

// traceHeaderName returns the name of the header used for trace IDs.
func traceHeaderName(config tracing.Config) string {
	if config.TraceHeader != "" {
		return config.TraceHeader
	}

	return "DW-Trace-Id"
}

// requestHeaderName returns the response header carrying the request ID.
func requestHeaderName(config tracing.Config) string {
	if config.RequestHeader != "" {
		return config.RequestHeader
	}

	return "DW-Request-Id"
}

// getTraceIDFromHeader extracts the trace ID from the request headers.
func getTraceIDFromHeader(c *gin.Context, config tracing.Config) string {
	traceID := c.GetHeader(traceHeaderName(config))
	if traceID != "" {
		return traceID
	}

	for _, header := range config.ExtraTraceHeaders {
		traceID = c.GetHeader(header)
		if traceID != "" {
			return traceID
		}
	}

	return ""
}

// tryGetTraceIDFromBody attempts to extract a trace ID from the request body
// based on the configured ExtraTraceBodyFields.
func tryGetTraceIDFromBody(c *gin.Context, config tracing.Config) (string, error) {
	if len(config.ExtraTraceBodyFields) == 0 {
		return "", nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if len(body) == 0 {
		return "", nil
	}

	for _, field := range config.ExtraTraceBodyFields {
		result := gjson.GetBytes(body, field)
		if result.Exists() && result.String() != "" {
			return result.String(), nil
		}
	}

	return "", nil
}

// WithLoggingTracing saves the trace ID and request ID to the request context.
// So the logger can log the trace ID and request ID in the next logs.
func WithLoggingTracing(config tracing.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Use the trace header from the request first.
		traceID := getTraceIDFromHeader(c, config)
		if traceID == "" {
			bodyTraceID, err := tryGetTraceIDFromBody(c, config)
			if err != nil {
				log.Warn(c.Request.Context(), "failed to read trace id from body", log.Cause(err))
			}

			traceID = bodyTraceID
		}

		if traceID == "" {
			traceID = tracing.GenerateTraceID()
		}

		// Generate request ID for each request
		requestID := tracing.GenerateRequestID()

		// Set request ID header in response
		c.Header(requestHeaderName(config), requestID)

		ctx := tracing.WithTraceID(c.Request.Context(), traceID)
		ctx = tracing.WithRequestID(ctx, requestID)

		operationName := fmt.Sprintf("%s %s", c.Request.Method, c.FullPath())
		ctx = tracing.WithOperationName(ctx, operationName)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
