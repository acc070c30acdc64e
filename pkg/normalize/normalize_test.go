package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/pkg/normalize"
)

func TestName_QuitaAcentosYMayusculas(t *testing.T) {
	assert.Equal(t, "sucursal andres", normalize.Name("Sucursal Andrés"))
	assert.Equal(t, "cafe nunez", normalize.Name("CAFÉ NÚÑEZ"))
}

func TestName_ColapsaEspacios(t *testing.T) {
	assert.Equal(t, "sucursal centro", normalize.Name("  Sucursal   Centro "))
}

func TestName_VacioQuedaVacio(t *testing.T) {
	assert.Equal(t, "", normalize.Name(""))
	assert.Equal(t, "", normalize.Name("   "))
}

// Dos escrituras distintas del mismo nombre deben producir la misma clave.
func TestName_EsClaveEstable(t *testing.T) {
	assert.Equal(t, normalize.Name("Sucursal Andrés"), normalize.Name("sucursal ANDRES"))
}
