package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// placeholder is replaced with the brand in every template label
	placeholder = "X"

	// decoration marks a brand glued into a larger word
	decoration = "~"

	// wildcardSentinel stands in for the brand while a reverse-match pattern is built.
	// It is a private-use rune so no label or casing rule can produce it.
	wildcardSentinel = "\uE000"

	// wildcardGroup captures the brand embedded in a query
	wildcardGroup = `(\S+)`

	// shortBrandLength is the longest brand rendered in upper case
	shortBrandLength = 3
)

// noiseReplacer strips parentheses and turns dashes into word separators
var noiseReplacer = strings.NewReplacer("(", "", ")", "", "-", " ")

// substitution is a single literal replacement applied while rendering a label
type substitution struct {
	old string
	new string
}

// renderRules returns the ordered substitutions that hydrate a label with brand.
// The decorated forms only exist after the placeholder has been replaced, so the
// order of this list is significant.
func renderRules(brand string) []substitution {
	lower := strings.ToLower(brand)
	return []substitution{
		{placeholder, brand},
		{decoration + brand + decoration, lower},
		{decoration + brand, lower},
		{brand + decoration, titleCase(brand)},
		{"_", " "},
	}
}

// Canonicalize normalizes a raw query: trimmed, lowercased, dashes as spaces
func Canonicalize(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	return strings.ReplaceAll(query, "-", " ")
}

// Denoise removes parentheses and replaces dashes with spaces
func Denoise(text string) string {
	return noiseReplacer.Replace(text)
}

// Render substitutes brand into a raw template label and produces a display name
func Render(label, brand string) string {
	name := label
	for _, rule := range renderRules(brand) {
		name = strings.ReplaceAll(name, rule.old, rule.new)
	}
	return name
}

// DeriveKeyword renders the label without a brand, for plain substring checks
func DeriveKeyword(label string) string {
	return Denoise(strings.ToLower(Render(label, "")))
}

// DerivePattern builds the reverse-match pattern of a label. The placeholder becomes
// a capturing group, everything else is matched literally. Decorated labels only
// keep the single token around the placeholder, since the brand is glued into it.
// Returns nil if the label has no placeholder.
func DerivePattern(label string) *regexp.Regexp {
	scrubbed := Denoise(strings.TrimSpace(label))
	hydrated := strings.ToLower(Render(scrubbed, wildcardSentinel))
	if !strings.Contains(hydrated, wildcardSentinel) {
		return nil
	}

	if strings.Contains(label, decoration) {
		for _, part := range strings.Split(hydrated, " ") {
			if strings.Contains(part, wildcardSentinel) {
				hydrated = part
				break
			}
		}
	}

	literals := strings.Split(hydrated, wildcardSentinel)
	for i, literal := range literals {
		literals[i] = regexp.QuoteMeta(literal)
	}
	return regexp.MustCompile(strings.Join(literals, wildcardGroup))
}

// ParseLabel extracts the raw label from a pool filename: the fixed prefix is dropped
// and everything from the first dot on is cut. Filenames shorter than the prefix
// produce an empty label.
func ParseLabel(filename string, prefixLength int) string {
	if prefixLength < 0 {
		prefixLength = 0
	}
	if utf8.RuneCountInString(filename) < prefixLength {
		return ""
	}
	body := string([]rune(filename)[prefixLength:])
	label, _, _ := strings.Cut(body, ".")
	return label
}

// DisplayBrand returns the form a brand is rendered with: short brands are
// upper-cased (DHC), longer ones title-cased (Acme)
func DisplayBrand(brand string) string {
	if utf8.RuneCountInString(brand) > shortBrandLength {
		return titleCase(brand)
	}
	return strings.ToUpper(brand)
}

// Tags returns the lowercased form of a product name used for search. Only the
// decoration is removed; dashes and parentheses stay as rendered.
func Tags(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), decoration, "")
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
// A Caser is stateful, so a new one is created per call.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
