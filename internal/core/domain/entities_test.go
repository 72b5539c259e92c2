package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"Administrador", "Digitador", "Encargado de Local", "Ministro de Fe"} {
		rol, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.True(t, rol.IsValid())
	}

	for _, invalid := range []string{"", "admin", "ADMINISTRADOR", "Encargado", "SuperUsuario"} {
		_, ok := ParseRole(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		rol              Role
		manageUsers      bool
		registerVotes    bool
		registerVotantes bool
		changeMesaState  bool
		scoped           bool
	}{
		{RoleAdministrador, true, true, true, true, false},
		{RoleEncargado, false, true, true, true, true},
		{RoleDigitador, false, false, true, false, true},
		{RoleMinistroDeFe, false, false, false, false, true},
		{Role("desconocido"), false, false, false, false, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.rol), func(t *testing.T) {
			assert.Equal(t, tc.manageUsers, tc.rol.CanManageUsers())
			assert.Equal(t, tc.registerVotes, tc.rol.CanRegisterVotes())
			assert.Equal(t, tc.registerVotantes, tc.rol.CanRegisterVotantes())
			assert.Equal(t, tc.changeMesaState, tc.rol.CanChangeMesaState())
			assert.Equal(t, tc.scoped, tc.rol.ScopedByPermiso())
		})
	}
}

func TestCategoriaFromNombre(t *testing.T) {
	assert.Equal(t, CategoriaComunal, CategoriaFromNombre("Proyectos Comunales"))
	assert.Equal(t, CategoriaComunal, CategoriaFromNombre("COMUNAL"))
	assert.Equal(t, CategoriaInfantil, CategoriaFromNombre("Presupuesto Infantil"))
	assert.Equal(t, CategoriaJuvenil, CategoriaFromNombre("Proyectos Juveniles"))
	assert.Equal(t, CategoriaSectorial, CategoriaFromNombre("Proyecto Sectorial"))
	assert.Equal(t, CategoriaOtra, CategoriaFromNombre("Mejoramiento de Barrio"))
	assert.Equal(t, CategoriaOtra, CategoriaFromNombre(""))
}

func TestCategoriaString(t *testing.T) {
	assert.Equal(t, "Comunal", CategoriaComunal.String())
	assert.Equal(t, "Infantil", CategoriaInfantil.String())
	assert.Equal(t, "Juvenil", CategoriaJuvenil.String())
	assert.Equal(t, "Sectorial", CategoriaSectorial.String())
	assert.Equal(t, "Otra", CategoriaOtra.String())
}

func TestTipoVoto(t *testing.T) {
	assert.True(t, VotoNormal.IsValid())
	assert.True(t, VotoBlanco.IsValid())
	assert.True(t, VotoNulo.IsValid())
	assert.False(t, TipoVoto("Impugnado").IsValid())
	assert.False(t, TipoVoto("").IsValid())
}
