package usecase

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/annai/backend/internal/domain"
)

const (
	// minQueryLength is the shortest canonical query that can produce a catalog
	minQueryLength = 3

	// reverseMatchMinLength is the length a query must exceed before templates
	// are searched for an embedded brand. Three-rune queries go straight to
	// selection, so "ego" stays a brand instead of "e" plus an "X~Go" template.
	reverseMatchMinLength = 3
)

// Resolver turns free-text queries into brand catalogs. It only reads the
// template pool, so one Resolver can serve concurrent requests.
type Resolver struct {
	pool   *TemplatePool
	logger *zap.Logger
}

// NewResolver creates a resolver over an immutable template pool
func NewResolver(pool *TemplatePool, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		pool:   pool,
		logger: logger.Named("resolver"),
	}
}

// Pool returns the template pool the resolver reads from
func (r *Resolver) Pool() *TemplatePool {
	return r.pool
}

// Resolve returns the products of a query sorted by name. Rejected or
// ambiguous queries produce an empty, non-nil slice.
func (r *Resolver) Resolve(query string) []domain.Product {
	return r.Explain(query).Products
}

// Explain resolves a query and reports the intermediate state along with the products
func (r *Resolver) Explain(query string) *domain.Resolution {
	resolution := &domain.Resolution{
		Query:     query,
		Canonical: Canonicalize(query),
	}

	products := r.resolve(resolution.Canonical, resolution)
	if products == nil {
		products = []domain.Product{}
	}
	resolution.Products = products

	r.logger.Debug("query resolved",
		zap.String("query", resolution.Canonical),
		zap.String("brand", resolution.Brand),
		zap.Strings("reverse_matches", resolution.ReverseMatches),
		zap.Int("products", len(products)))

	return resolution
}

// resolve runs the resolution state machine on a canonical query. The trace
// receives the intermediate state and is nil for per-word sub-resolutions.
func (r *Resolver) resolve(canonical string, trace *domain.Resolution) []domain.Product {
	if utf8.RuneCountInString(canonical) < minQueryLength {
		return nil
	}

	// Step 1: Look for templates that already name a product in the query
	brand := canonical
	var reverse map[string]bool
	if utf8.RuneCountInString(canonical) > reverseMatchMinLength {
		brand, reverse = r.reverseMatch(canonical)
	}

	// Step 2: Select the catalog of the working brand and keep the reverse matches in it
	catalog := Select(brand, r.pool)
	var matches []*domain.Template
	for _, tmpl := range catalog {
		if reverse[tmpl.File] {
			matches = append(matches, tmpl)
		}
	}

	display := DisplayBrand(brand)
	if trace != nil {
		trace.Brand = brand
		trace.DisplayBrand = display
		trace.ReverseMatches = sortedKeys(reverse)
	}

	// Step 3: The extracted brand does not own any of the matched templates
	if len(matches) == 0 && brand != canonical {
		r.logger.Debug("ambiguous reverse match rejected",
			zap.String("query", canonical),
			zap.String("brand", brand))
		return nil
	}

	candidates := matches
	if len(candidates) == 0 {
		candidates = catalog
	}

	// Step 4: Render, then narrow to exact phrase matches
	products := make([]domain.Product, 0, len(candidates))
	for _, tmpl := range candidates {
		products = append(products, renderProduct(tmpl, display))
	}
	products = refineBySubstring(products, canonical)

	// Step 5: Multi-word queries also pull in per-word catalogs spanning all words
	if strings.Contains(canonical, " ") {
		products = r.expandWords(canonical, products)
	}

	sortProducts(products)
	return products
}

// reverseMatch searches every template pattern in the query. The shortest
// captured brand wins, the first template in pool order breaking ties.
func (r *Resolver) reverseMatch(canonical string) (string, map[string]bool) {
	brand := canonical
	shortest := -1
	matched := make(map[string]bool)

	for _, tmpl := range r.pool.templates {
		if tmpl.Pattern == nil {
			continue
		}
		found := tmpl.Pattern.FindStringSubmatch(canonical)
		if found == nil {
			continue
		}
		matched[tmpl.File] = true

		capture := found[1]
		if length := utf8.RuneCountInString(capture); shortest < 0 || length < shortest {
			brand = capture
			shortest = length
		}
	}

	return brand, matched
}

// expandWords resolves every word of a multi-word query on its own and appends
// the results whose tags contain all the words in order
func (r *Resolver) expandWords(canonical string, products []domain.Product) []domain.Product {
	words := strings.Fields(canonical)
	quoted := make([]string, len(words))
	for i, word := range words {
		quoted[i] = regexp.QuoteMeta(word)
	}
	crossWord := regexp.MustCompile(strings.Join(quoted, ".*"))

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		seen[p.Name] = true
	}

	for _, word := range words {
		for _, p := range r.resolve(word, nil) {
			if seen[p.Name] || !crossWord.MatchString(p.Tags) {
				continue
			}
			seen[p.Name] = true
			products = append(products, p)
		}
	}
	return products
}

// renderProduct names a template for the display brand
func renderProduct(tmpl *domain.Template, display string) domain.Product {
	name := Render(tmpl.Label, display)
	return domain.Product{
		Name: name,
		Tags: Tags(name),
		Image: domain.Image{
			Src:    tmpl.Src,
			Width:  tmpl.Width,
			Height: tmpl.Height,
		},
	}
}

// refineBySubstring keeps only the products whose tags contain the whole query,
// unless none do
func refineBySubstring(products []domain.Product, canonical string) []domain.Product {
	exact := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(p.Tags, canonical) {
			exact = append(exact, p)
		}
	}
	if len(exact) == 0 {
		return products
	}
	return exact
}

// sortProducts orders products by name, byte-wise
func sortProducts(products []domain.Product) {
	slices.SortStableFunc(products, func(a, b domain.Product) int {
		return strings.Compare(a.Name, b.Name)
	})
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
