package usecase

import (
	"crypto/md5"
	"encoding/binary"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/annai/backend/internal/domain"
)

const (
	minBrandLength = 3
	maxCatalogSize = 26 // one item per letter of the alphabet
)

// curatedCatalogs are brands whose catalog is a fixed list of pool indices
var curatedCatalogs = map[string][]int{
	"dhc": {12, 58, 32, 5, 8},
}

// Select returns the reproducible catalog of a brand. The brand is lowercased first,
// so casing never changes the result. The catalog holds one item per alphabet
// position of the first letter (a=1 ... z=26), capped by the pool size, drawn from
// a shuffle seeded by the MD5 digest of the brand.
func Select(brand string, pool *TemplatePool) []*domain.Template {
	brand = strings.ToLower(brand)

	if indices, ok := curatedCatalogs[brand]; ok {
		return curatedCatalog(indices, pool)
	}

	count := catalogSize(brand)
	if count == 0 {
		return nil
	}

	catalog := pool.All()
	hi, lo := seedFor(brand)
	rng := rand.New(rand.NewPCG(hi, lo))
	rng.Shuffle(len(catalog), func(i, j int) {
		catalog[i], catalog[j] = catalog[j], catalog[i]
	})

	return catalog[:min(count, len(catalog))]
}

// catalogSize returns how many items a brand gets, or 0 if the brand is rejected
func catalogSize(brand string) int {
	if utf8.RuneCountInString(brand) < minBrandLength {
		return 0
	}
	if strings.Contains(brand, " ") {
		return 0
	}

	first, _ := utf8.DecodeRuneInString(brand)
	count := int(first-'a') + 1
	if count < 1 || count > maxCatalogSize {
		return 0
	}
	return count
}

// seedFor reads the MD5 digest of brand as a big-endian 128-bit integer and
// returns its high and low halves
func seedFor(brand string) (uint64, uint64) {
	digest := md5.Sum([]byte(brand))
	return binary.BigEndian.Uint64(digest[:8]), binary.BigEndian.Uint64(digest[8:])
}

// curatedCatalog picks fixed indices from the pool. Indices past the end of a
// smaller pool are skipped.
func curatedCatalog(indices []int, pool *TemplatePool) []*domain.Template {
	catalog := make([]*domain.Template, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < pool.Len() {
			catalog = append(catalog, pool.At(i))
		}
	}
	return catalog
}
