package devkit

import (
	"encoding/json"

	"github.com/goliatone/go-meta-tokens/core"
)

// Canned Graph API bodies captured from real responses, with identifiers
// and token values replaced.
const (
	FixtureAppAccessToken = `{"access_token":"123456789|AbCdEfGhIjKlMnOpQrStUvWxYz0","token_type":"bearer"}`

	FixtureLongLivedUserAccessToken = `{"access_token":"EAAGlongLivedUserToken","token_type":"bearer","expires_in":5183944}`

	FixtureSessionInfoAccessToken = `{"access_token":"EAAGsessionInfoToken","token_type":"bearer","expires_in":5183999}`

	FixtureDebugTokenApp = `{"data":{"app_id":"123456789","type":"APP","application":"Token Lab","is_valid":true,"scopes":[]}}`

	FixtureDebugTokenUser = `{"data":{"app_id":"123456789","type":"USER","application":"Token Lab",` +
		`"data_access_expires_at":1680000000,"expires_at":1675000000,"is_valid":true,"issued_at":1669800000,` +
		`"metadata":{"auth_type":"rerequest","sso":"ios"},"scopes":["email","pages_show_list","public_profile"],` +
		`"granular_scopes":[{"scope":"pages_show_list","target_ids":["1000000001","1000000002"]},{"scope":"email"}],` +
		`"user_id":"10000000000001"}}`

	FixtureDebugTokenUserNeverExpires = `{"data":{"app_id":"123456789","type":"USER","application":"Token Lab",` +
		`"data_access_expires_at":0,"expires_at":0,"is_valid":true,"scopes":["public_profile"],"user_id":"10000000000001"}}`

	FixtureDebugTokenPage = `{"data":{"app_id":"123456789","type":"PAGE","application":"Token Lab",` +
		`"data_access_expires_at":1680000000,"expires_at":0,"is_valid":true,"issued_at":1669800000,` +
		`"profile_id":"200000000000001","scopes":["pages_show_list","pages_read_engagement"],` +
		`"granular_scopes":[{"scope":"pages_read_engagement","target_ids":null}],"user_id":"10000000000001"}}`

	FixtureDebugTokenInvalid = `{"data":{"app_id":"123456789","type":"USER","application":"Token Lab",` +
		`"data_access_expires_at":0,"error":{"code":190,"message":"Error validating access token: Session has expired on Tuesday, 29-Nov-22 03:00:00 PST.","subcode":463},` +
		`"expires_at":1669719600,"is_valid":false,"scopes":[],"user_id":"10000000000001"}}`

	FixtureDebugOnlyAccessToken = `{"error":{"message":"Invalid OAuth access token - Debug only access token","type":"OAuthException","code":190,"fbtrace_id":"AbCdEfGhIjK"}}`

	FixtureSessionHasBeenInvalidated = `{"error":{"message":"Error validating access token: The session has been invalidated because the user changed their password or Facebook has changed the session for security reasons.","type":"OAuthException","code":190,"error_subcode":460,"fbtrace_id":"AbCdEfGhIjK"}}`

	FixtureSessionHasExpired = `{"error":{"message":"Error validating access token: Session has expired on Tuesday, 29-Nov-22 03:00:00 PST. The current time is Tuesday, 29-Nov-22 04:00:00 PST.","type":"OAuthException","code":190,"error_subcode":463,"fbtrace_id":"AbCdEfGhIjK"}}`

	FixtureSessionKeyMalformed = `{"error":{"message":"Error validating access token: Session key invalid. This could be because the session key EAAGxyz is malformed.","type":"OAuthException","code":190,"fbtrace_id":"AbCdEfGhIjK"}}`

	FixtureMissingAppAccessToken = `{"error":{"message":"(#100) You must provide an app access token, or a user access token that is an owner or developer of the app","type":"OAuthException","code":100,"fbtrace_id":"AbCdEfGhIjK"}}`

	FixtureApplicationRequestLimit = `{"error":{"message":"(#4) Application request limit reached","type":"OAuthException","is_transient":true,"code":4,"fbtrace_id":"AbCdEfGhIjK"}}`

	FixturePagesSearch = `{"data":[{"id":"300000000000001","is_eligible_for_branded_content":true,"is_unclaimed":false,` +
		`"link":"https://www.facebook.com/coffeebar","location":{"city":"Seattle","country":"United States",` +
		`"latitude":47.6062,"longitude":-122.3321,"state":"WA","street":"1 Pike St","zip":"98101"},` +
		`"name":"Coffee Bar","verification_status":"blue_verified"},` +
		`{"id":"300000000000002","link":"https://www.facebook.com/coffeecart","name":"Coffee Cart"}],` +
		`"paging":{"cursors":{"before":"QVFIUmJlZm9yZQ","after":"QVFIUmFmdGVy"},"next":"https://graph.facebook.com/v15.0/pages/search?after=QVFIUmFmdGVy"}}`

	FixtureGatewayHTML = "<html><body><h1>502 Bad Gateway</h1></body></html>"
)

// JSONResponse scripts a response with a JSON content type.
func JSONResponse(statusCode int, body string) TransportScript {
	return TransportScript{Response: core.TransportResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json; charset=UTF-8"},
		Body:       []byte(body),
	}}
}

// RawResponse scripts a response with an arbitrary body.
func RawResponse(statusCode int, body []byte) TransportScript {
	return TransportScript{Response: core.TransportResponse{
		StatusCode: statusCode,
		Headers:    map[string]string{},
		Body:       append([]byte(nil), body...),
	}}
}

// ErrorScript scripts a transport failure.
func ErrorScript(err error) TransportScript {
	return TransportScript{Err: err}
}

// GraphErrorFixture builds {"error":{...}} bodies for ad hoc cases.
type GraphErrorFixture struct {
	Message   string
	Type      string
	Code      int
	Subcode   *int
	FBTraceID string
}

func (f GraphErrorFixture) Body() string {
	payload := map[string]any{
		"message": f.Message,
		"code":    f.Code,
	}
	if f.Type != "" {
		payload["type"] = f.Type
	}
	if f.Subcode != nil {
		payload["error_subcode"] = *f.Subcode
	}
	if f.FBTraceID != "" {
		payload["fbtrace_id"] = f.FBTraceID
	}
	encoded, _ := json.Marshal(map[string]any{"error": payload})
	return string(encoded)
}

func (f GraphErrorFixture) Script(statusCode int) TransportScript {
	return JSONResponse(statusCode, f.Body())
}

func IntPtr(value int) *int {
	return &value
}
