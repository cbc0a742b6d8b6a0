// Package view renders the storefront's HTML pages from embedded templates.
package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/validation"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	layoutFile   = "templates/base.html"
	baseTemplate = "base"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS

	//go:embed static
	staticFS embed.FS
)

// StaticFS serves the bundled assets under /static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return sub
}

// Renderer implements echo.Renderer. Each page is parsed together with the base layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page template once.
func NewRenderer(cfg *config.Config) (*Renderer, error) {
	mediaPrefix := "/media/"
	if cfg != nil && cfg.Media != nil && cfg.Media.URLPrefix != "" {
		mediaPrefix = cfg.Media.URLPrefix
	}

	layout, err := template.New(baseTemplate).Funcs(funcMap(mediaPrefix)).ParseFS(templateFS, layoutFile)
	if err != nil {
		return nil, errors.Wrap(err, "parse layout")
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}

		tmpl, err := template.Must(layout.Clone()).ParseFS(templateFS, page)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", page)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(page, "templates/"), ".html")
		templates[name] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}

	return errors.WithStack(tmpl.ExecuteTemplate(w, baseTemplate, data))
}

func funcMap(mediaPrefix string) template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"media": func(key string) string {
			if key == "" {
				return ""
			}

			return mediaPrefix + key
		},
		"stars": func(rating int) string {
			return strings.Repeat("★", rating) + strings.Repeat("☆", entity.MaxRating-rating)
		},
		"fieldErrors": func(formErrors validation.FormErrors, field string) []string {
			return formErrors.Get(field)
		},
		"productURL": func(p *entity.Product) string {
			if p.SlugValue() == "" {
				return ""
			}

			return "/shop/" + p.SlugValue() + "/"
		},
		"alertClass": func(level entity.FlashLevel) string {
			if level == entity.FlashError {
				return "danger"
			}

			return string(level)
		},
	}
}
