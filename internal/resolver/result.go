package resolver

import "net/http"

// Status is the outcome marker carried by every response envelope.
type Status string

// Envelope statuses.
const (
	StatusOK    Status = "OK"
	StatusError Status = "ERROR"
)

// Envelope is the uniform JSON body returned for every request.
type Envelope struct {
	Status  Status `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Result pairs an envelope with the HTTP status code it is served with.
type Result struct {
	Code     int
	Envelope Envelope
}

// OK wraps payload in a successful result.
func OK(payload any) Result {
	return Result{
		Code:     http.StatusOK,
		Envelope: Envelope{Status: StatusOK, Payload: payload},
	}
}

// Fail builds an error result with the given status code and message.
func Fail(code int, message string) Result {
	return Result{
		Code:     code,
		Envelope: Envelope{Status: StatusError, Error: message},
	}
}

// IsOK reports whether the result carries an OK envelope.
func (r Result) IsOK() bool {
	return r.Envelope.Status == StatusOK
}

// Entry describes one directory entry in a listing.
type Entry struct {
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Path        string `json:"path"`
	IsDir       bool   `json:"is_dir"`
	Permissions string `json:"permissions"`
	SizeBytes   int64  `json:"size_bytes"`
}
