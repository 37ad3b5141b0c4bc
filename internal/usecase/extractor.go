package usecase

import (
	"regexp"
	"strings"

	"github.com/pricecart/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	quantityPattern     = regexp.MustCompile(`(\d+)\s*(kg|ml|pcs|pack|pc|g|l)\b`)
	connectorPattern    = regexp.MustCompile(`\b(with|and)\b`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// connectorReplacer maps connector punctuation to spaces
var connectorReplacer = strings.NewReplacer(
	"&", " ", ",", " ", "-", " ", "/", " ", "(", " ", ")", " ", "+", " ",
)

// TypeEntry maps one coarse product type to its keyword synonyms
type TypeEntry struct {
	Type     string
	Keywords []string
}

// Lexicon is the immutable vocabulary the extractor works with. It is
// injected at construction so runs with different taxonomies stay isolated.
type Lexicon struct {
	// NoiseWords are removed by case-insensitive substring removal, in
	// order. Longer phrases must precede their substrings ("farm fresh"
	// before "fresh").
	NoiseWords []string

	// TypeTable is scanned in order; the first type whose keyword appears
	// as a substring of the cleaned text wins.
	TypeTable []TypeEntry
}

// DefaultLexicon returns the grocery taxonomy used in production
func DefaultLexicon() Lexicon {
	return Lexicon{
		NoiseWords: []string{
			"farm fresh", "freshly", "fresho!", "fresho", "fresh",
			"premium", "organic", "natural", "super saver", "value pack",
			"bb royal", "bb popular", "daily", "combo",
		},
		TypeTable: []TypeEntry{
			{Type: "fruits", Keywords: []string{"apple", "banana", "mango", "orange", "grapes", "pomegranate", "papaya", "watermelon", "guava", "kiwi"}},
			{Type: "vegetables", Keywords: []string{"onion", "potato", "tomato", "carrot", "cucumber", "spinach", "capsicum", "cauliflower", "okra", "beans"}},
			{Type: "dairy", Keywords: []string{"milk", "curd", "paneer", "butter", "cheese", "ghee", "yogurt", "lassi"}},
			{Type: "bakery", Keywords: []string{"bread", "bun", "cake", "rusk", "croissant", "muffin"}},
			{Type: "grains", Keywords: []string{"rice", "atta", "wheat", "dal", "flour", "oats", "poha"}},
			{Type: "snacks", Keywords: []string{"chips", "biscuit", "namkeen", "cookies", "chocolate", "popcorn"}},
			{Type: "beverages", Keywords: []string{"juice", "cola", "soda", "coffee", "tea", "water"}},
			{Type: "meat", Keywords: []string{"chicken", "mutton", "fish", "prawns", "eggs", "egg"}},
		},
	}
}

// DescriptorExtractor turns a raw listing name into a normalized
// descriptor: clean tokens, canonical quantity, coarse product type
type DescriptorExtractor struct {
	lexicon Lexicon
}

// NewDescriptorExtractor creates an extractor over the given lexicon
func NewDescriptorExtractor(lexicon Lexicon) *DescriptorExtractor {
	return &DescriptorExtractor{lexicon: lexicon}
}

// Extract normalizes a listing name. It never fails: a name that yields
// nothing produces empty tokens and absent quantity/type.
func (e *DescriptorExtractor) Extract(name, category string) domain.ProductDescriptor {
	working := strings.ToLower(name)

	// Strip marketing/brand noise by substring removal
	for _, noise := range e.lexicon.NoiseWords {
		working = strings.ReplaceAll(working, noise, " ")
	}

	// Capture the first quantity token and remove it from the text
	quantity := ""
	if loc := quantityPattern.FindStringSubmatchIndex(working); loc != nil {
		digits := working[loc[2]:loc[3]]
		unit := working[loc[4]:loc[5]]
		quantity = digits + unit
		working = working[:loc[0]] + " " + working[loc[1]:]
	}

	// Connector words and punctuation become spaces
	working = connectorPattern.ReplaceAllString(working, " ")
	working = connectorReplacer.Replace(working)
	working = multipleSpacesRegex.ReplaceAllString(working, " ")
	working = strings.TrimSpace(working)

	return domain.ProductDescriptor{
		Tokens:      tokenize(working),
		Quantity:    quantity,
		ProductType: e.lookupType(working),
	}
}

// lookupType scans the type table in order; first keyword hit wins
func (e *DescriptorExtractor) lookupType(cleaned string) string {
	if cleaned == "" {
		return ""
	}
	for _, entry := range e.lexicon.TypeTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(cleaned, keyword) {
				return entry.Type
			}
		}
	}
	return ""
}

// tokenize splits cleaned text on whitespace
func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
