package html

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"warehouse.GO/config"
	entity "warehouse.GO/model/entity/warehouse"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template is the echo renderer for the HTML pages.
type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewTemplate parses the embedded page templates.
func NewTemplate() (*Template, error) {
	t, err := template.New("pages").Funcs(TemplateFuncs(time.Now)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Template{Templates: t}, nil
}

// TemplateFuncs returns the helpers the page templates use. now fixes "today"
// for expiry highlighting.
func TemplateFuncs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"date": func(d *datatypes.Date) string {
			if d == nil {
				return "-"
			}
			return entity.FormatDate(*d)
		},
		"expiryClass": func(b entity.Batch) string {
			if b.ExpiryDate == nil {
				return ""
			}
			today := now()
			if entity.DaysBetween(today, time.Time(*b.ExpiryDate)) < 0 {
				return "expired"
			}
			if b.IsNearExpiry(today, config.App().NearExpiryDays) {
				return "warn"
			}
			return ""
		},
	}
}
