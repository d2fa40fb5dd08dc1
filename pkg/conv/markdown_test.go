package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello adventurer",
			expected: "Hello adventurer\n",
		},
		{
			name:     "bold text",
			input:    "**26**",
			expected: "<strong>26</strong>\n",
		},
		{
			name:     "italic text",
			input:    "*Attack roll*",
			expected: "<em>Attack roll</em>\n",
		},
		{
			name:     "strikethrough dropped die",
			input:    "~~3~~, **18**",
			expected: "<del>3</del>, <strong>18</strong>\n",
		},
		{
			name:     "inline code",
			input:    "`[14, 3]`",
			expected: "<code>[14, 3]</code>\n",
		},
		{
			name:     "disallowed heading tag stripped",
			input:    "# Rules",
			expected: "Rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if strings.TrimSpace(got) != strings.TrimSpace(tt.expected) {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
