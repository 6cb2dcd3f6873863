package diff

import (
	"strings"
	"testing"

	"github.com/gerunddev/markdata/render"
)

func TestUnifiedEmptyForIdenticalTexts(t *testing.T) {
	if got := Unified("a.md", "b.md", "same\n", "same\n"); got != "" {
		t.Errorf("got %q, want empty diff", got)
	}
}

func TestUnifiedReportsChangedLine(t *testing.T) {
	got := Unified("a.md", "b.md", "alpha\nbeta\n", "alpha\ngamma\n")
	for _, want := range []string{"--- a.md", "+++ b.md", "-beta", "+gamma"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff missing %q:\n%s", want, got)
		}
	}
}

func TestRoundTripCleanDocument(t *testing.T) {
	source := "# Title\n\ntext\n"
	if got := RoundTrip("doc.md", source, render.Options{Spacer: 1}); got != "" {
		t.Errorf("got diff for canonical document:\n%s", got)
	}
}

func TestRoundTripReportsNormalization(t *testing.T) {
	source := "- a\n    - b\n"
	got := RoundTrip("doc.md", source, render.Options{Spacer: 1})
	if !strings.Contains(got, "-    - b") || !strings.Contains(got, "+  - b") {
		t.Errorf("diff does not show list indent normalization:\n%s", got)
	}
}
