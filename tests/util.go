package testutil

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// Course plans as authored in the CMS.
const (
	// PlanStructuredFR uses heading markers.
	PlanStructuredFR = `<p>Une formation pour mieux collaborer.</p>
<p>Durée totale : 2h</p>

### DÉCOUVRIR
a) Storytelling : Vidéo "Le déclic", 3'23
b) Quiz d'introduction
- 5 questions VRAI/FAUX
- Correction commentée

### SE BOUSCULER
a) Vidéo d'expert : les biais cognitifs (12'05)
Une mise en perspective sur YouTube

### APPRENDRE
a) Documents téléchargeables
b) Fiche mémo

### ANCRER
a) Quizzes de fin de module

### RESSOURCES COMPLÉMENTAIRES
- Bibliographie`

	// PlanStructuredEN is an English plan with an unknown section.
	PlanStructuredEN = `Work better together.

## Discover
a) Expert video: trust at work, 4'10
## Bonus Content
a) Downloadable documents
## Learn
a) TRUE/FALSE quiz`

	// PlanLegacyFR has no heading markers: sections are found by topic keywords.
	PlanLegacyFR = `<p>Introduction g&eacute;n&eacute;rale.</p><p>D&eacute;couvrir : les bases</p><p>Apprendre</p><ul><li>a) Vid&eacute;o d&#39;expert</li></ul><p>Ressources : liens utiles</p>`

	// PlanPlain has neither headings nor keywords.
	PlanPlain = "Just some plain text.\nMore text."
)

// Diff returns a unified diff of want and got, or "" when they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// AssertSameText fails the test with a readable diff when want and got differ.
func AssertSameText(t *testing.T, want, got string) {
	t.Helper()
	if diff := Diff(want, got); diff != "" {
		t.Errorf("text mismatch:\n%s", strings.TrimRight(diff, "\n"))
	}
}
