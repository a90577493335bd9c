package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplates holds every page template; pages are executed by their
// define names ("home", "post", "notfound").
var pageTemplates = template.Must(template.New("site").ParseFS(templateFS, "templates/*.html"))
