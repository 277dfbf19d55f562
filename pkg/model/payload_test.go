package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPayloadMarshalKeepsInsertionOrder(t *testing.T) {
	tests := []struct {
		name   string
		values [][2]string
		want   string
	}{
		{
			name:   "base form",
			values: [][2]string{{"name", "Alice"}, {"content", "Hello"}},
			want:   `{"name":"Alice","content":"Hello"}`,
		},
		{
			name:   "email form",
			values: [][2]string{{"name", "Bob"}, {"email", "bob@example.com"}, {"content", "Hi"}},
			want:   `{"name":"Bob","email":"bob@example.com","content":"Hi"}`,
		},
		{
			name:   "empty and untrimmed values",
			values: [][2]string{{"name", ""}, {"content", "  spaced  "}},
			want:   `{"name":"","content":"  spaced  "}`,
		},
		{
			name:   "markup is not escaped",
			values: [][2]string{{"content", `<b>"hi" & bye</b>`}},
			want:   `{"content":"<b>\"hi\" & bye</b>"}`,
		},
		{
			name: "empty payload",
			want: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := NewPayload(len(tt.values))
			for _, kv := range tt.values {
				payload.Set(kv[0], kv[1])
			}
			got, err := payload.MarshalJSON()
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("marshal mismatch\nwant: %s\n got: %s", tt.want, got)
			}
		})
	}
}

func TestPayloadSetOverwriteKeepsPosition(t *testing.T) {
	payload := NewPayload(2)
	payload.Set("name", "first")
	payload.Set("content", "body")
	payload.Set("name", "second")

	if diff := cmp.Diff([]string{"name", "content"}, payload.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got, _ := payload.Get("name"); got != "second" {
		t.Fatalf("expected overwritten value, got %q", got)
	}
}

func TestPayloadUnmarshal(t *testing.T) {
	var payload Payload
	if err := json.Unmarshal([]byte(`{"name":"Bob","email":"bob@example.com","content":""}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "email", "content"}, payload.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"name": "Bob", "email": "bob@example.com", "content": ""}
	if diff := cmp.Diff(want, payload.Map()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestPayloadUnmarshalRejectsNonStrings(t *testing.T) {
	for _, raw := range []string{`[]`, `{"name":1}`, `{"name":{"nested":"x"}}`, `"text"`} {
		var payload Payload
		err := json.Unmarshal([]byte(raw), &payload)
		if !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("%s: expected ErrInvalidPayload, got %v", raw, err)
		}
	}
}
