package tags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "json array",
			input: `["a","b","c"]`,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "json array embedded in prose",
			input: "Here are your tags: [\"go\", \"notes\"] — enjoy!",
			want:  []string{"go", "notes"},
		},
		{
			name:  "comma separated",
			input: "a, b, c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "newline separated with quotes",
			input: "\"work\"\n'ideas'\nplanning",
			want:  []string{"work", "ideas", "planning"},
		},
		{
			name:  "fallback truncates to five",
			input: "a, b, c, d, e, f, g",
			want:  []string{"a", "b", "c", "d", "e"},
		},
		{
			name:  "empty response",
			input: "",
			want:  []string{},
		},
		{
			name:  "whitespace only",
			input: "   \n  ",
			want:  []string{},
		},
		{
			name:  "empty json array",
			input: "[]",
			want:  []string{},
		},
		{
			name:  "malformed json falls back to splitting",
			input: `["a", "b"`,
			want:  []string{`["a`, `b`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseTags(tt.input))
		})
	}
}
