package notification

import "testing"

func TestAppleScriptString(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"hello", `"hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"", `""`},
		{"日本語のテキスト", `"日本語のテキスト"`},
	}

	for _, tt := range tests {
		if got := appleScriptString(tt.in); got != tt.expected {
			t.Errorf("appleScriptString(%q) = %s, expected %s", tt.in, got, tt.expected)
		}
	}
}
