package submit

import "testing"

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error string", body: `{"error":"Invalid email"}`, want: "Invalid email"},
		{name: "empty error string", body: `{"error":""}`, want: ""},
		{name: "extra keys", body: `{"error":"bad","code":42}`, want: "bad"},
		{name: "missing key", body: `{"message":"bad"}`, want: "fallback"},
		{name: "null error", body: `{"error":null}`, want: "fallback"},
		{name: "numeric error", body: `{"error":500}`, want: "fallback"},
		{name: "array body", body: `["bad"]`, want: "fallback"},
		{name: "plain text", body: `bad gateway`, want: "fallback"},
		{name: "empty", body: ``, want: "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage([]byte(tt.body), "fallback"); got != tt.want {
				t.Fatalf("ErrorMessage(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
