package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/gestion-pro/pkg/textutil"
)

func TestNormalize_QuitaTildesYBajaACaja(t *testing.T) {
	assert.Equal(t, "almacen", textutil.Normalize("Almacén"))
	assert.Equal(t, "camion pequeno", textutil.Normalize("Camión Pequeño"))
	assert.Equal(t, "guiro", textutil.Normalize("Güiro"))
}

func TestNormalize_RecortaEspacios(t *testing.T) {
	assert.Equal(t, "bodega norte", textutil.Normalize("  Bodega Norte  "))
}

func TestNormalize_CadenaVacia(t *testing.T) {
	assert.Equal(t, "", textutil.Normalize(""))
}
