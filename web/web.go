// Package web embeds the HTML templates rendered by the controllers.
package web

import (
	"embed"
	"html/template"

	"github.com/yeremiapane/restaurant-orders/utils"
)

//go:embed templates/*.html
var files embed.FS

// FuncMap is shared by every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"price": utils.FormatPrice,
		"lineTotal": func(qty int, price int64) string {
			return utils.FormatPrice(int64(qty) * price)
		},
	}
}

// Templates parses the embedded templates. Each page is registered under its
// file name, e.g. "orders.html".
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(FuncMap()).ParseFS(files, "templates/*.html"))
}
