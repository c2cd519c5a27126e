package ingredient

import (
	"strings"
	"unicode"
)

// Normalized is the result of normalizing a raw ingredient name.
// Key is the fully lower-cased comparison form used for deduplication;
// Display is the same text with the first letter capitalized.
type Normalized struct {
	Key     string
	Display string
}

// qualifiers are preparation/state words stripped from ingredient names.
// Matched case-insensitively as whole words, anywhere in the string.
var qualifiers = map[string]struct{}{
	"minced":    {},
	"diced":     {},
	"chopped":   {},
	"sliced":    {},
	"thinly":    {},
	"finely":    {},
	"roughly":   {},
	"grated":    {},
	"shredded":  {},
	"crushed":   {},
	"peeled":    {},
	"cubed":     {},
	"boneless":  {},
	"skinless":  {},
	"fresh":     {},
	"frozen":    {},
	"dried":     {},
	"cooked":    {},
	"raw":       {},
	"ripe":      {},
	"large":     {},
	"medium":    {},
	"small":     {},
	"whole":     {},
	"halved":    {},
	"trimmed":   {},
	"rinsed":    {},
	"drained":   {},
	"softened":  {},
	"melted":    {},
	"beaten":    {},
	"optional":  {},
	"of":        {},
}

// measures are quantity words stripped alongside qualifiers so that
// "2 cloves minced garlic" reduces to "garlic" even when the AI cleaning
// step is unavailable. Stored in singular form; plural forms are reduced
// before lookup.
var measures = map[string]struct{}{
	"cup":        {},
	"clove":      {},
	"tablespoon": {},
	"tbsp":       {},
	"teaspoon":   {},
	"tsp":        {},
	"ounce":      {},
	"oz":         {},
	"pound":      {},
	"lb":         {},
	"gram":       {},
	"g":          {},
	"kg":         {},
	"ml":         {},
	"liter":      {},
	"litre":      {},
	"pinch":      {},
	"dash":       {},
	"slice":      {},
	"piece":      {},
	"stick":      {},
	"stalk":      {},
	"sprig":      {},
	"bunch":      {},
	"head":       {},
	"can":        {},
	"jar":        {},
	"pack":       {},
	"package":    {},
	"handful":    {},
}

// singularExceptions are words ending in "s" that must not be trimmed.
var singularExceptions = map[string]struct{}{
	"hummus":    {},
	"couscous":  {},
	"asparagus": {},
	"molasses":  {},
	"swiss":     {},
	"grits":     {},
	"oats":      {},
	"greens":    {},
}

// Normalize reduces a raw ingredient name to a comparison key and a display
// form. It never fails; an input with nothing left after stripping yields an
// empty pair, which callers filter out.
func Normalize(raw string) Normalized {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return Normalized{}
	}

	// Drop punctuation so ", diced" style suffixes tokenize cleanly.
	var b strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '/' || r == '.':
			// Keep fraction and decimal characters attached to their number
			// token so "1/2" and "1.5" are dropped as a unit below.
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var kept []string
	for _, tok := range strings.Fields(b.String()) {
		if isNumeric(tok) {
			continue
		}
		if _, ok := qualifiers[tok]; ok {
			continue
		}
		if _, ok := measures[Singularize(tok)]; ok {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return Normalized{}
	}

	kept[len(kept)-1] = Singularize(kept[len(kept)-1])
	key := strings.Join(kept, " ")

	return Normalized{Key: key, Display: Capitalize(key)}
}

// Singularize applies the small fixed set of plural reductions. It is a
// best-effort heuristic, not a stemmer.
func Singularize(word string) string {
	if _, ok := singularExceptions[word]; ok {
		return word
	}
	switch {
	case strings.HasSuffix(word, "oes") && len(word) > 3:
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return strings.TrimSuffix(word, "ies") + "y"
	case strings.HasSuffix(word, "sses") || strings.HasSuffix(word, "shes") || strings.HasSuffix(word, "ches") || strings.HasSuffix(word, "xes"):
		return strings.TrimSuffix(word, "es")
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "s") && len(word) > 2:
		return strings.TrimSuffix(word, "s")
	}
	return word
}

// Capitalize upper-cases the first letter only, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Key returns only the comparison form of a name: lower-cased, trimmed, with
// inner whitespace collapsed. Used when re-keying already-cleaned names.
func Key(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func isNumeric(tok string) bool {
	hasDigit := false
	for _, r := range tok {
		switch {
		case unicode.IsNumber(r):
			hasDigit = true
		case r == '/' || r == '.':
		default:
			return false
		}
	}
	return hasDigit
}
