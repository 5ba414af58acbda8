// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// TransactionsPage is the template name of the balance page.
const TransactionsPage = "transactions.html"

//go:embed templates/*.html
var templateFS embed.FS

// TransactionsData feeds TransactionsPage.
type TransactionsData struct {
	Balance string
	// Authorization is the caller's own header, replayed by the page's
	// deposit and withdraw requests.
	Authorization string
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
