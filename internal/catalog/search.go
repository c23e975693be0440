package catalog

import "strings"

// localeTable holds the two substitution directions for one storefront
// language: folding accented characters to their base Latin letters and
// rebuilding the accented form from base letters.
type localeTable struct {
	toBase      map[rune]rune
	toDiacritic map[rune]rune
}

// Albanian storefronts dominate the platform, so "sq" doubles as the
// fallback table. The base direction also folds common Latin vowel
// accents that show up in pasted product names.
var localeTables = map[string]localeTable{
	"sq": {
		toBase: map[rune]rune{
			'ë': 'e', 'Ë': 'E',
			'ç': 'c', 'Ç': 'C',
			'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a',
			'é': 'e', 'è': 'e', 'ê': 'e',
			'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
			'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o',
			'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
			'Á': 'A', 'À': 'A', 'Â': 'A', 'Ä': 'A',
			'É': 'E', 'È': 'E', 'Ê': 'E',
			'Í': 'I', 'Ì': 'I', 'Î': 'I', 'Ï': 'I',
			'Ó': 'O', 'Ò': 'O', 'Ô': 'O', 'Ö': 'O',
			'Ú': 'U', 'Ù': 'U', 'Û': 'U', 'Ü': 'U',
		},
		toDiacritic: map[rune]rune{
			'e': 'ë', 'E': 'Ë',
			'c': 'ç', 'C': 'Ç',
		},
	},
	"sr": {
		toBase: map[rune]rune{
			'š': 's', 'Š': 'S',
			'č': 'c', 'Č': 'C',
			'ć': 'c', 'Ć': 'C',
			'ž': 'z', 'Ž': 'Z',
			'đ': 'd', 'Đ': 'D',
		},
		toDiacritic: map[rune]rune{
			's': 'š', 'S': 'Š',
			'c': 'č', 'C': 'Č',
			'z': 'ž', 'Z': 'Ž',
			'd': 'đ', 'D': 'Đ',
		},
	},
}

// Expander produces diacritic-insensitive variants of a search term so
// substring search matches regardless of accent usage.
type Expander struct {
	defaultLocale string
}

func NewExpander(defaultLocale string) *Expander {
	if _, ok := localeTables[defaultLocale]; !ok {
		defaultLocale = "sq"
	}

	return &Expander{defaultLocale: defaultLocale}
}

// Expand returns the deduplicated set {original, base-form,
// diacritic-form} for the given term. A blank term yields nil, which
// callers treat as "skip search entirely". Unknown locales use the
// expander's default table.
func (e *Expander) Expand(locale, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	table, ok := localeTables[locale]
	if !ok {
		table = localeTables[e.defaultLocale]
	}

	variants := []string{term}
	variants = appendUnique(variants, substitute(term, table.toBase))
	variants = appendUnique(variants, substitute(term, table.toDiacritic))

	return variants
}

func substitute(term string, table map[rune]rune) string {
	var b strings.Builder
	b.Grow(len(term))

	for _, r := range term {
		if mapped, ok := table[r]; ok {
			r = mapped
		}

		b.WriteRune(r)
	}

	return b.String()
}

func appendUnique(variants []string, candidate string) []string {
	for _, v := range variants {
		if v == candidate {
			return variants
		}
	}

	return append(variants, candidate)
}
