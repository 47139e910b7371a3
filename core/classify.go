package core

import "encoding/json"

// Defaults applied when the service's error envelope omits fields.
const (
	defaultErrorStatus  = "error"
	defaultErrorCode    = 500
	defaultErrorMessage = "An unknown error occurred."
)

// errorEnvelope is the service's error body:
// {"status": "...", "code": ..., "message": "..."}.
// Pointer fields distinguish absent fields from explicit zero values.
type errorEnvelope struct {
	Status  *string `json:"status"`
	Code    *int    `json:"code"`
	Message *string `json:"message"`
}

// Classify maps a transport status code and raw response body to a
// decoded JSON payload or a typed *[APIError].
//
// Success statuses (2xx) decode the body and return the payload as-is.
// Other statuses parse the body as an error envelope, default absent
// fields, and classify by the envelope's application code: 401 is an
// authentication failure, 400-499 a client request error, and
// everything else a server error. The returned error carries the
// application code, not the transport status.
//
// A body that does not decode, on either path, classifies as a decode
// error carrying the transport status and the raw body text.
//
// Classify never retries; retry behavior belongs to the caller.
func Classify(statusCode int, body []byte) (any, error) {
	if statusCode >= 200 && statusCode < 300 {
		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &APIError{StatusCode: statusCode, Message: string(body), Err: ErrDecode}
		}
		return payload, nil
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &APIError{StatusCode: statusCode, Message: string(body), Err: ErrDecode}
	}

	code := defaultErrorCode
	if env.Code != nil {
		code = *env.Code
	}
	message := defaultErrorMessage
	if env.Message != nil {
		message = *env.Message
	}

	return nil, &APIError{StatusCode: code, Message: message, Err: sentinelForCode(code)}
}

// sentinelForCode maps an application error code to its sentinel.
func sentinelForCode(code int) error {
	switch {
	case code == 401:
		return ErrAuthentication
	case code >= 400 && code < 500:
		return ErrClientRequest
	default:
		return ErrServer
	}
}
