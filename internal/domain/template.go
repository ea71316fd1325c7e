package domain

import "regexp"

// PoolFile is a single image file found in the template pool directory
type PoolFile struct {
	Name   string
	Width  int
	Height int
}

// Template is the parsed naming template of one pool image.
// Templates are built once at startup and must never be mutated afterwards.
type Template struct {
	File    string         // source filename, unique and used as the sort key
	Label   string         // raw label with placeholder and decoration markers
	Keyword string         // label rendered with an empty brand, lowercased
	Pattern *regexp.Regexp // reverse-match pattern, nil when the label has no placeholder
	Src     string         // public path of the image
	Width   int
	Height  int
}

// TemplateView is the JSON representation of a template for listing endpoints
type TemplateView struct {
	File    string `json:"file"`
	Label   string `json:"label"`
	Keyword string `json:"keyword"`
	Pattern string `json:"pattern,omitempty"`
	Image   Image  `json:"image"`
}

// View converts the template to its JSON representation
func (t *Template) View() TemplateView {
	view := TemplateView{
		File:    t.File,
		Label:   t.Label,
		Keyword: t.Keyword,
		Image:   Image{Src: t.Src, Width: t.Width, Height: t.Height},
	}
	if t.Pattern != nil {
		view.Pattern = t.Pattern.String()
	}
	return view
}
