package utils

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// UpstreamStatus maps an error from the model endpoint to the status this
// service answers with. Auth problems surface as 401 so clients can ask the
// user for a new key, rate limits pass through as 429, the rest is 502.
func UpstreamStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	code := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		code = reqErr.HTTPStatusCode
	}

	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return http.StatusUnauthorized
	case code == http.StatusBadRequest && isKeyMessage(err):
		// Gemini reports a malformed key as 400 INVALID_ARGUMENT
		return http.StatusUnauthorized
	case code == http.StatusTooManyRequests:
		return http.StatusTooManyRequests
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "context deadline exceeded") || strings.Contains(errMsg, "timeout") {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func isKeyMessage(err error) bool {
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "api key") || strings.Contains(errMsg, "api_key")
}

// DetermineContentType picks the MIME type an artifact is served with.
func DetermineContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "application/json; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
