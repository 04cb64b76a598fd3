package testdata

import "html/template"

// Page holds a template whose package shares its name with text/template.
type Page struct {
	tmpl *template.Template
}

func (p Page) Deref() *template.Template {
	return p.tmpl
}
