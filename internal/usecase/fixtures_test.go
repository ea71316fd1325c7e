package usecase

import (
	"fmt"

	"github.com/annai/backend/internal/domain"
)

// fixtureFiles is a ten-template pool. Every brand starting with a letter from
// j onwards selects the whole pool, so results do not depend on shuffle order.
var fixtureFiles = []string{
	"0000X_Edition.png",
	"0001X_Deluxe_Edition.png",
	"0002X~Cola.png",
	"0003X_Chips.png",
	"0004Mega~X~mart.png",
	"0005X_(Original).png",
	"0006X-Lite_Soda.png",
	"0007Classic_X.png",
	"0008X_Snacks.png",
	"0009X_Sparkling_Water.jpg",
}

func newFixturePool() *TemplatePool {
	files := make([]domain.PoolFile, len(fixtureFiles))
	for i, name := range fixtureFiles {
		files[i] = domain.PoolFile{Name: name, Width: 100 + i, Height: 200 + i}
	}
	return NewTemplatePool(files, PoolOptions{PrefixLength: 4, PublicPath: "static/products/"})
}

// newNumberedPool builds a pool of n "X_Item_NN" templates
func newNumberedPool(n int) *TemplatePool {
	files := make([]domain.PoolFile, n)
	for i := range files {
		files[i] = domain.PoolFile{Name: fmt.Sprintf("%04dX_Item_%02d.png", i, i), Width: 64, Height: 64}
	}
	return NewTemplatePool(files, PoolOptions{PrefixLength: 4, PublicPath: "static/products/"})
}

func productNames(products []domain.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}

func templateFiles(templates []*domain.Template) []string {
	files := make([]string, len(templates))
	for i, t := range templates {
		files[i] = t.File
	}
	return files
}
