package render

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/preview.html templates/style.css
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/preview.html"))

var stylesheet = func() template.CSS {
	b, err := templatesFS.ReadFile("templates/style.css")
	if err != nil {
		panic(err)
	}
	return template.CSS(b)
}()

// HTML renders p as a standalone page with the stylesheet inlined, so the
// page prints the same whether it is opened from disk or in headless Chrome.
func HTML(p Preview) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Preview Preview
		CSS     template.CSS
	}{Preview: p, CSS: stylesheet}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
