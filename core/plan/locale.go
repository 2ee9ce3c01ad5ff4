package plan

import "strings"

type Locale string

const (
	FR Locale = "fr"
	EN Locale = "en"
)

// ParseLocale maps s to a supported locale. Unknown values yield FR, the catalog's default language.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case FR:
		return FR, true
	case EN:
		return EN, true
	default:
		return FR, false
	}
}

func (l Locale) valid() Locale {
	if l == EN {
		return EN
	}
	return FR
}

// Kind is a canonical section kind.
type Kind int

const (
	KindDefault Kind = iota
	KindDiscovery
	KindShakeUp
	KindLearning
	KindAnchoring
	KindResources
)

var (
	// kindOrder is the matching order of the resolver and the topic order of the keyword fallback.
	kindOrder = []Kind{KindDiscovery, KindShakeUp, KindLearning, KindAnchoring, KindResources}

	// MainKinds are the numbered kinds, in badge order.
	MainKinds = []Kind{KindDiscovery, KindShakeUp, KindLearning, KindAnchoring}

	kindNames = map[Kind]string{
		KindDefault:   "default",
		KindDiscovery: "discovery",
		KindShakeUp:   "shake-up",
		KindLearning:  "learning",
		KindAnchoring: "anchoring",
		KindResources: "additional-resources",
	}
)

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindDefault]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Number returns the 1-based badge number of a main kind, or 0.
func (k Kind) Number() int {
	for i, main := range MainKinds {
		if k == main {
			return i + 1
		}
	}
	return 0
}

type Icon string

const (
	IconDiscovery Icon = "compass"
	IconShakeUp   Icon = "zap"
	IconLearning  Icon = "book-open"
	IconAnchoring Icon = "anchor"
	IconResources Icon = "folder-plus"
	IconDefault   Icon = "list"

	// inline icons
	IconVideo    Icon = "video"
	IconDownload Icon = "download"
	IconCheck    Icon = "check"
	IconCross    Icon = "x"
	IconYouTube  Icon = "youtube"
	IconQuiz     Icon = "grid"
	IconClock    Icon = "clock"
)

var kindIcons = map[Kind]Icon{
	KindDiscovery: IconDiscovery,
	KindShakeUp:   IconShakeUp,
	KindLearning:  IconLearning,
	KindAnchoring: IconAnchoring,
	KindResources: IconResources,
}

// Symbol is the badge glyph of sections without a number.
const Symbol = "+"

type (
	// terms is the locale specific wording of a Kind.
	terms struct {
		Keyword     string // matched against titles and, in the keyword fallback, free text
		Label       string
		Description string
	}

	vocabulary struct {
		Title              string
		SyntheticTitle     string
		DefaultDescription string
		Kinds              map[Kind]terms
	}
)

var vocabularies = map[Locale]vocabulary{
	FR: {
		Title:              "Programme de la formation",
		SyntheticTitle:     "Plan du cours",
		DefaultDescription: "Section du programme de la formation",
		Kinds: map[Kind]terms{
			KindDiscovery: {"DÉCOUVRIR", "Découvrir", "Découvrir : explorer les notions clés du sujet"},
			KindShakeUp:   {"BOUSCULER", "Se bousculer", "Se bousculer : remettre en question ses idées reçues"},
			KindLearning:  {"APPRENDRE", "Apprendre", "Apprendre : approfondir avec des contenus d'experts"},
			KindAnchoring: {"ANCRER", "Ancrer", "Ancrer : mettre en pratique et mémoriser"},
			KindResources: {"RESSOURCES", "Ressources complémentaires", "Ressources complémentaires : aller plus loin"},
		},
	},
	EN: {
		Title:              "Course Curriculum",
		SyntheticTitle:     "Course Plan",
		DefaultDescription: "Course curriculum section",
		Kinds: map[Kind]terms{
			KindDiscovery: {"DISCOVER", "Discover", "Discover: explore the key notions of the topic"},
			KindShakeUp:   {"SHAKE", "Shake up", "Shake up: challenge your preconceptions"},
			KindLearning:  {"LEARN", "Learn", "Learn: go deeper with expert content"},
			KindAnchoring: {"ANCHOR", "Anchor", "Anchor: practice and memorize"},
			KindResources: {"RESOURCES", "Additional resources", "Additional resources: go further"},
		},
	},
}

func vocabularyOf(l Locale) vocabulary {
	return vocabularies[l.valid()]
}

// Title returns the fixed plan title of the locale.
func Title(l Locale) string {
	return vocabularyOf(l).Title
}
