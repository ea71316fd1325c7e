package usecase

import (
	"slices"
	"strings"

	"github.com/annai/backend/internal/domain"
)

// DefaultPrefixLength is the number of opaque leading characters of a pool filename
const DefaultPrefixLength = 4

// PoolOptions controls how scanned files are turned into templates
type PoolOptions struct {
	PrefixLength int    // opaque filename prefix stripped before parsing
	PublicPath   string // prefix of the public image path, e.g. "static/products/"
}

// TemplatePool is the immutable, filename-ordered set of templates.
// It is safe for concurrent readers; nothing mutates it after construction.
type TemplatePool struct {
	templates []*domain.Template
	byFile    map[string]*domain.Template
}

// NewTemplatePool parses scanned files into templates ordered by filename.
// Duplicate filenames keep their first occurrence.
func NewTemplatePool(files []domain.PoolFile, opts PoolOptions) *TemplatePool {
	prefixLength := opts.PrefixLength
	if prefixLength < 0 {
		prefixLength = DefaultPrefixLength
	}

	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b domain.PoolFile) int {
		return strings.Compare(a.Name, b.Name)
	})

	pool := &TemplatePool{
		templates: make([]*domain.Template, 0, len(sorted)),
		byFile:    make(map[string]*domain.Template, len(sorted)),
	}
	for _, file := range sorted {
		if _, exists := pool.byFile[file.Name]; exists {
			continue
		}
		tmpl := ParseTemplate(file, prefixLength, opts.PublicPath)
		pool.templates = append(pool.templates, tmpl)
		pool.byFile[file.Name] = tmpl
	}
	return pool
}

// ParseTemplate builds the template record of a single pool file.
// It never fails: a malformed filename yields an empty label.
func ParseTemplate(file domain.PoolFile, prefixLength int, publicPath string) *domain.Template {
	label := ParseLabel(file.Name, prefixLength)
	return &domain.Template{
		File:    file.Name,
		Label:   label,
		Keyword: DeriveKeyword(label),
		Pattern: DerivePattern(label),
		Src:     publicPath + file.Name,
		Width:   file.Width,
		Height:  file.Height,
	}
}

// Len returns the number of templates
func (p *TemplatePool) Len() int {
	return len(p.templates)
}

// At returns the template at index i in filename order
func (p *TemplatePool) At(i int) *domain.Template {
	return p.templates[i]
}

// All returns a copy of the ordered template list
func (p *TemplatePool) All() []*domain.Template {
	return slices.Clone(p.templates)
}

// Lookup finds a template by its source filename
func (p *TemplatePool) Lookup(file string) (*domain.Template, bool) {
	tmpl, ok := p.byFile[file]
	return tmpl, ok
}
