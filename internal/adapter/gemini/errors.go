package gemini

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// IsRateLimited reports whether err is a 429 throttling signal. The API
// surfaces these as *googleapi.Error; message sniffing covers wrapped
// transport errors that lose the typed form.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "quota")
}

// IsNotFound reports whether err indicates the requested model does not
// exist or is not available to this API key.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusNotFound
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "404") || strings.Contains(msg, "not found")
}
