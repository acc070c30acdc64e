// Package normalize implementa la normalización de nombres para búsqueda: los
// clientes direccionan sucursales por su nombre visible ("Sucursal Andrés"),
// así que las comparaciones ignoran mayúsculas y acentos.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name devuelve el nombre en minúsculas, sin acentos y sin espacios
// redundantes, apto como clave de búsqueda.
func Name(s string) string {
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}
