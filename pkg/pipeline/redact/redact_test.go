package redact_test

import (
	"testing"

	"github.com/simdem/archive-plugins/pkg/pipeline/redact"
)

func TestSecrets(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "bearer", in: "auth failed: Bearer abc.def", want: "auth failed: Bearer <redacted>"},
		{name: "discord bot", in: "Authorization: Bot MTIz.x.y rejected", want: "Authorization: Bot <redacted> rejected"},
		{name: "password kv", in: "login with password=hunter2 failed", want: "login with <redacted_kv> failed"},
		{name: "token kv in form", in: "token=abc&user=bob", want: "<redacted_kv>&user=bob"},
		{name: "plain", in: "  nothing secret  ", want: "nothing secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := redact.Secrets(tt.in); got != tt.want {
				t.Fatalf("Secrets(%q)=%q want=%q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	in := map[string]any{
		"Token":   "abc",
		"content": "use Bearer xyz",
		"id":      42,
	}
	got := redact.Fields(in)

	if got["Token"] != "<redacted>" {
		t.Fatalf("Token not masked: %#v", got)
	}
	if got["content"] != "use Bearer <redacted>" {
		t.Fatalf("content not scrubbed: %#v", got)
	}
	if got["id"] != 42 {
		t.Fatalf("id changed: %#v", got)
	}
	if in["Token"] != "abc" {
		t.Fatalf("input mutated: %#v", in)
	}
}
