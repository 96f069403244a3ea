package invoice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	ParseFS(templateFS, "templates/*.html"))

// HTML renders the printable invoice page.
func HTML(doc Document) (string, error) {
	return execute("invoice.html", doc)
}

// EmailHTML renders the order confirmation email body.
func EmailHTML(doc Document) (string, error) {
	return execute("email.html", doc)
}

func execute(name string, doc Document) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, doc); err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", name, err)
	}

	return buf.String(), nil
}
