// Package views holds the HTML templates and the data they render.
package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type Template struct {
	tmpl *template.Template
}

func NewTemplate() *Template {
	return &Template{
		tmpl: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.tmpl.ExecuteTemplate(w, name, data)
}

var funcs = template.FuncMap{
	"weekendClass": func(i int) string {
		switch i {
		case 0:
			return "sun"
		case 6:
			return "sat"
		}
		return ""
	},
}
