package parts

import (
	_ "embed"
	"html/template"
)

//go:embed critical.css
var criticalCSS string

// CriticalCSS returns the inline stylesheet shared by every page.
func CriticalCSS() template.CSS {
	return template.CSS(criticalCSS)
}
