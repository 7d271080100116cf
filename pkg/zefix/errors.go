package zefix

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Redacted replaces credential values in errors.
const Redacted = "[REDACTED]"

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrBaseURLRequired    = errors.New("base URL is required")
	ErrBrowserEnvironment = errors.New("the ZEFIX client must not run in a browser: credentials would be exposed to every page script, call the API from a server instead")
	ErrInvalidUID         = errors.New("invalid UID")
	ErrInvalidCHID        = errors.New("invalid CH-ID")
	ErrInvalidEHRAID      = errors.New("invalid EHRA-ID")
	ErrInvalidSOGCID      = errors.New("invalid SOGC publication ID")
	ErrSearchNameRequired = errors.New("search name is required")
)

// APIError is the error body returned by the ZEFIX API.
type APIError struct {
	Status  int    `json:"status,omitempty"  yaml:"status,omitempty"`
	Code    string `json:"error,omitempty"   yaml:"error,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s (status: %d)", e.Code, e.Message, e.Status)
	case e.Message != "":
		return fmt.Sprintf("%s (status: %d)", e.Message, e.Status)
	case e.Code != "":
		return fmt.Sprintf("%s (status: %d)", e.Code, e.Status)
	default:
		return fmt.Sprintf("unknown API error (status: %d)", e.Status)
	}
}

// ParseAPIError parses an error body. It returns nil when data holds no
// recognizable error.
func ParseAPIError(statusCode int, data []byte) *APIError {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var apiErr APIError

	err := json.Unmarshal(data, &apiErr)
	if err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		return nil
	}

	if apiErr.Status == 0 {
		apiErr.Status = statusCode
	}

	return &apiErr
}

// HTTPError is returned for every non-2xx response. It carries the request
// headers for diagnostics with all credentials redacted; build it with
// NewHTTPError only.
type HTTPError struct {
	StatusCode int         `json:"status_code"`
	Method     string      `json:"method"`
	URL        string      `json:"url"`
	Headers    http.Header `json:"headers,omitempty"`
	Body       string      `json:"body,omitempty"`
	APIError   *APIError   `json:"api_error,omitempty"`
}

// NewHTTPError builds an HTTPError for a failed request. Authorization
// headers of req are replaced with Redacted and their values are scrubbed
// from body.
func NewHTTPError(statusCode int, method, url string, req *Request, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
	}

	var secrets []string
	if req != nil {
		httpErr.Headers, secrets = redactHeaders(req.Headers)
	}

	httpErr.Body = scrub(string(body), secrets)
	httpErr.APIError = ParseAPIError(statusCode, []byte(httpErr.Body))

	return httpErr
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.APIError != nil {
		return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.APIError.Error())
	}

	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap exposes the parsed API error.
func (e *HTTPError) Unwrap() error {
	if e.APIError == nil {
		return nil
	}

	return e.APIError
}

func redactHeaders(headers http.Header) (http.Header, []string) {
	if headers == nil {
		return nil, nil
	}

	var secrets []string

	redacted := make(http.Header, len(headers))

	for key, values := range headers {
		if !isCredentialHeader(key) {
			redacted[key] = append([]string(nil), values...)

			continue
		}

		for _, value := range values {
			secrets = append(secrets, credentialParts(value)...)
		}

		redacted[key] = []string{Redacted}
	}

	return redacted, secrets
}

func isCredentialHeader(key string) bool {
	return strings.EqualFold(key, "Authorization") || strings.EqualFold(key, "Proxy-Authorization")
}

// minScrubbedPassword is the shortest bare password removed from bodies.
// Shorter ones would mangle ordinary text; user:password pairs are always
// removed.
const minScrubbedPassword = 8

// credentialParts returns the substrings of an Authorization value that must
// not leak: the value itself, its token and, for Basic, the decoded
// user:password pair and a password of at least minScrubbedPassword runes.
func credentialParts(value string) []string {
	parts := []string{value}

	scheme, token, found := strings.Cut(value, " ")
	if !found {
		return parts
	}

	parts = append(parts, token)

	if strings.EqualFold(scheme, "Basic") {
		if decoded, err := decodeBase64(token); err == nil {
			parts = append(parts, decoded)
			_, password, ok := strings.Cut(decoded, ":")
			if ok && utf8.RuneCountInString(password) >= minScrubbedPassword {
				parts = append(parts, password)
			}
		}
	}

	return parts
}

func scrub(text string, secrets []string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}

		text = strings.ReplaceAll(text, secret, Redacted)
	}

	return text
}

// AsHTTPError returns the HTTPError in err's chain, if any.
func AsHTTPError(err error) (*HTTPError, bool) {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	return nil, false
}

func hasStatus(err error, status int) bool {
	if httpErr, ok := AsHTTPError(err); ok {
		return httpErr.StatusCode == status
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsTooManyRequests checks if the server rejected the request rate.
func IsTooManyRequests(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}
