package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CodeStatusCodeAndBody marks a GraphError fabricated locally from a non-JSON
// failure response. Graph API codes are never this value.
const CodeStatusCodeAndBody = -2_147_483_001

type ErrorType string

const (
	ErrorTypeOAuthException       ErrorType = "OAuthException"
	ErrorTypeGraphMethodException ErrorType = "GraphMethodException"
)

// IsKnown reports whether the type is one of the named Graph error types.
// Any other value is kept verbatim.
func (t ErrorType) IsKnown() bool {
	return t == ErrorTypeOAuthException || t == ErrorTypeGraphMethodException
}

// GraphError is the error object returned by the Graph API under the
// "error" key. Unknown members are kept in Extra and written back flat.
type GraphError struct {
	Message        string
	Type           ErrorType
	Code           int
	ErrorSubcode   *int
	ErrorUserTitle string
	ErrorUserMsg   string
	FBTraceID      string
	Extra          map[string]any
}

var graphErrorKnownKeys = map[string]struct{}{
	"message":          {},
	"type":             {},
	"code":             {},
	"error_subcode":    {},
	"error_user_title": {},
	"error_user_msg":   {},
	"fbtrace_id":       {},
}

// NewStatusCodeAndBodyError fabricates a GraphError carrying the status and
// raw body of a failure response that had no structured error.
func NewStatusCodeAndBodyError(statusCode int, body string) GraphError {
	return GraphError{
		Message: fmt.Sprintf("status_code:%d body:%s", statusCode, body),
		Code:    CodeStatusCodeAndBody,
		Extra: map[string]any{
			"status_code": statusCode,
			"body":        body,
		},
	}
}

// AsStatusCodeAndBody recovers the values stored by NewStatusCodeAndBodyError.
// It reports false for every error not carrying the sentinel code.
func (e GraphError) AsStatusCodeAndBody() (int, string, bool) {
	if e.Code != CodeStatusCodeAndBody || e.Extra == nil {
		return 0, "", false
	}
	statusCode, ok := integerValue(e.Extra["status_code"])
	if !ok {
		return 0, "", false
	}
	body, ok := e.Extra["body"].(string)
	if !ok {
		return 0, "", false
	}
	return int(statusCode), body, true
}

func (e GraphError) IsErrorValidatingAccessToken() bool {
	return e.messageContains("error validating access token")
}

func (e GraphError) IsAccessTokenSessionHasBeenInvalidated() bool {
	return e.messageContains("session has been invalidated")
}

func (e GraphError) IsAccessTokenSessionHasExpired() bool {
	return e.messageContains("session has expired")
}

func (e GraphError) IsAccessTokenSessionKeyIsMalformed() bool {
	if e.messageContains("session key is malformed") {
		return true
	}
	return e.messageContains("session key ") && e.messageContains(" is malformed")
}

// IsDebugOnlyAccessToken matches the rejection returned when a session-info
// token is used to debug itself.
func (e GraphError) IsDebugOnlyAccessToken() bool {
	return e.messageContains("invalid oauth access token - debug only access token")
}

func (e GraphError) messageContains(fragment string) bool {
	return strings.Contains(strings.ToLower(e.Message), fragment)
}

// KnownErrorCase classifies the error. See Classify.
func (e GraphError) KnownErrorCase() (KnownErrorCase, bool) {
	return Classify(e)
}

func (e GraphError) Error() string {
	if e.ErrorSubcode != nil {
		return fmt.Sprintf("graph error code=%d subcode=%d: %s", e.Code, *e.ErrorSubcode, e.Message)
	}
	return fmt.Sprintf("graph error code=%d: %s", e.Code, e.Message)
}

func (e GraphError) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Extra)+7)
	for key, value := range e.Extra {
		out[key] = value
	}
	out["message"] = e.Message
	out["code"] = e.Code
	if e.Type != "" {
		out["type"] = string(e.Type)
	}
	if e.ErrorSubcode != nil {
		out["error_subcode"] = *e.ErrorSubcode
	}
	if e.ErrorUserTitle != "" {
		out["error_user_title"] = e.ErrorUserTitle
	}
	if e.ErrorUserMsg != "" {
		out["error_user_msg"] = e.ErrorUserMsg
	}
	if e.FBTraceID != "" {
		out["fbtrace_id"] = e.FBTraceID
	}
	return json.Marshal(out)
}

func (e *GraphError) UnmarshalJSON(data []byte) error {
	fields, err := DecodeObject(data, "graph error")
	if err != nil {
		return err
	}

	var decoded GraphError
	if err := RequireField(fields, "message", &decoded.Message); err != nil {
		return err
	}
	if err := RequireField(fields, "code", &decoded.Code); err != nil {
		return err
	}
	var errorType *string
	if err := OptionalField(fields, "type", &errorType); err != nil {
		return err
	}
	if errorType != nil {
		decoded.Type = ErrorType(*errorType)
	}
	if err := OptionalField(fields, "error_subcode", &decoded.ErrorSubcode); err != nil {
		return err
	}
	if err := OptionalField(fields, "error_user_title", &decoded.ErrorUserTitle); err != nil {
		return err
	}
	if err := OptionalField(fields, "error_user_msg", &decoded.ErrorUserMsg); err != nil {
		return err
	}
	if err := OptionalField(fields, "fbtrace_id", &decoded.FBTraceID); err != nil {
		return err
	}
	extra, err := CollectExtra(fields, graphErrorKnownKeys)
	if err != nil {
		return err
	}
	decoded.Extra = extra

	*e = decoded
	return nil
}

// ErrorEnvelope is the {"error": {...}} wrapper of every Graph failure body.
type ErrorEnvelope struct {
	Error GraphError `json:"error"`
}

func (e *ErrorEnvelope) UnmarshalJSON(data []byte) error {
	fields, err := DecodeObject(data, "error envelope")
	if err != nil {
		return err
	}
	var graphErr GraphError
	if err := RequireField(fields, "error", &graphErr); err != nil {
		return err
	}
	e.Error = graphErr
	return nil
}
