package domain

// Product is a single catalog entry rendered for a brand
type Product struct {
	Name  string `json:"name"`
	Tags  string `json:"tags"` // lowercased name used for substring search
	Image Image  `json:"image"`
}

// Image describes the picture backing a product
type Image struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Resolution describes how a query was resolved into a catalog
type Resolution struct {
	Query          string    `json:"query"`
	Canonical      string    `json:"canonical"`
	Brand          string    `json:"brand"`
	DisplayBrand   string    `json:"displayBrand"`
	ReverseMatches []string  `json:"reverseMatches,omitempty"`
	Products       []Product `json:"products"`
}
