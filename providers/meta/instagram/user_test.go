package instagram

import (
	"encoding/json"
	"testing"
)

func TestUser_UnmarshalJSON(t *testing.T) {
	cases := map[string]string{
		"number": `{"id":17841400000000001}`,
		"string": `{"id":"17841400000000001","username":"coffeebar"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var user User
			if err := json.Unmarshal([]byte(body), &user); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if user.ID != 17841400000000001 {
				t.Fatalf("unexpected id %d", user.ID)
			}
		})
	}

	for name, body := range map[string]string{
		"missing": `{}`,
		"null":    `{"id":null}`,
		"text":    `{"id":"abc"}`,
		"array":   `[1]`,
	} {
		t.Run(name, func(t *testing.T) {
			var user User
			if err := json.Unmarshal([]byte(body), &user); err == nil {
				t.Fatalf("expected decode error")
			}
		})
	}
}

func TestUser_MarshalJSON(t *testing.T) {
	encoded, err := json.Marshal(User{ID: 17841400000000001})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(encoded) != `{"id":"17841400000000001"}` {
		t.Fatalf("unexpected encoding %s", encoded)
	}
}
