package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is a non-2xx response from the server
type APIError struct {
	Status        int
	Message       string
	Code          string
	NextAttemptIn int // seconds, rate limited responses only
	Strikes       int
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// RateLimited reports whether the server refused the call with 429
func (e *APIError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests
}

// RetryAfter is the server's countdown hint
func (e *APIError) RetryAfter() time.Duration {
	return time.Duration(e.NextAttemptIn) * time.Second
}

type structuredError struct {
	Message       string `json:"message"`
	Code          string `json:"code"`
	NextAttemptIn int    `json:"nextAttemptIn"`
	Strikes       int    `json:"strikes"`
}

// decodeAPIError accepts both {"error":"msg"} and {"error":{...}} bodies
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return apiErr
	}

	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err == nil {
		apiErr.Message = msg
		return apiErr
	}

	var structured structuredError
	if err := json.Unmarshal(envelope.Error, &structured); err == nil {
		apiErr.Message = structured.Message
		apiErr.Code = structured.Code
		apiErr.NextAttemptIn = structured.NextAttemptIn
		apiErr.Strikes = structured.Strikes
	}
	return apiErr
}
