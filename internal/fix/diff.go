package fix

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Diff renders a unified diff between the original and fixed document text.
// Empty when nothing changed.
func Diff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (fixed)",
		Context:  3,
	})
}
