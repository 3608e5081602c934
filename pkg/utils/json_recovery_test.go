package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain object untouched",
			in:   `{"days": []}`,
			want: `{"days": []}`,
		},
		{
			name: "markdown fences stripped",
			in:   "```json\n{\"days\": []}\n```",
			want: `{"days": []}`,
		},
		{
			name: "chatty prefix stripped",
			in:   `Here's the itinerary: {"days": []}`,
			want: `{"days": []}`,
		},
		{
			name: "trailing prose cut at balanced close",
			in:   `{"days": []} I hope this helps!`,
			want: `{"days": []}`,
		},
		{
			name: "leading prose before object",
			in:   `Sure thing. {"days": [{"date": "2026-09-01"}]}`,
			want: `{"days": [{"date": "2026-09-01"}]}`,
		},
		{
			name: "array payload",
			in:   "```json\n[1, 2, 3]\n```",
			want: `[1, 2, 3]`,
		},
		{
			name: "braces inside strings ignored",
			in:   `{"note": "use {curly} braces"} trailing`,
			want: `{"note": "use {curly} braces"}`,
		},
		{
			name: "escaped quotes inside strings",
			in:   `{"note": "she said \"go\""} extra`,
			want: `{"note": "she said \"go\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONResponse(tt.in))
		})
	}
}

func TestRecoverJSONValid(t *testing.T) {
	out, err := RecoverJSON("```json\n{\"days\": []}\n```")
	require.NoError(t, err)
	assert.Equal(t, `{"days": []}`, out)
}

func TestRecoverJSONUnrecoverable(t *testing.T) {
	for _, in := range []string{
		"",
		"I could not generate an itinerary for this trip.",
		`{"days": [`,
	} {
		_, err := RecoverJSON(in)
		require.Error(t, err, in)
		assert.True(t, IsMalformedErr(err), in)
	}
}

func TestFindMatchingDelimNested(t *testing.T) {
	s := `{"a": {"b": [1, {"c": 2}]}} tail`
	end := findMatchingDelim(s, 0, '{', '}')
	require.NotEqual(t, -1, end)
	assert.Equal(t, `{"a": {"b": [1, {"c": 2}]}}`, s[:end+1])
}
