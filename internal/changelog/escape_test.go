package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEscape(t *testing.T) {
	tests := map[string]struct {
		line       string
		wantKind   EscapeKind
		wantReason string
		wantOK     bool
	}{
		"full line": {
			line:   "<!-- clog-disable-next-line -->",
			wantOK: true, wantKind: EscapeFullLine,
		},
		"full line with reason": {
			line:   "<!-- clog-disable-next-line: imported wording -->",
			wantOK: true, wantKind: EscapeFullLine, wantReason: "imported wording",
		},
		"duplicate pr": {
			line:   "<!-- clog-disable-next-line-duplicate-pr -->",
			wantOK: true, wantKind: EscapeDuplicatePR,
		},
		"duplicate pr with reason": {
			line:   "<!-- clog-disable-next-line-duplicate-pr: backport of #412 -->",
			wantOK: true, wantKind: EscapeDuplicatePR, wantReason: "backport of #412",
		},
		"indented directive": {
			line:   "  <!-- clog-disable-next-line -->  ",
			wantOK: true, wantKind: EscapeFullLine,
		},
		"tight spacing": {
			line:   "<!--clog-disable-next-line-->",
			wantOK: true, wantKind: EscapeFullLine,
		},
		"ordinary comment":    {line: "<!-- just a note -->"},
		"unknown directive":   {line: "<!-- clog-disable-everything -->"},
		"multi line opener":   {line: "<!--"},
		"not a comment":       {line: "clog-disable-next-line"},
		"suffix not a marker": {line: "<!-- clog-disable-next-line-extra -->"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			esc, ok := ParseEscape(tt.line)
			if !tt.wantOK {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, esc.Kind)
			assert.Equal(t, tt.wantReason, esc.Reason)
			assert.Equal(t, tt.line, esc.Line)
		})
	}
}
