package services

import (
	"context"
	"testing"

	"muni-votaciones/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterVotante_RutUniquePerPeriodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa25 := f.mesa(t, sede.ID, "Mesa 1", 2025, true)
	mesa24 := f.mesa(t, sede.ID, "Mesa 1", 2024, true)

	input := &RegisterVotanteInput{
		MesaID:  mesa25.ID,
		Periodo: 2025,
		Rut:     "12.345.678-5",
		Nombre:  "Juana Pérez",
	}

	_, err := f.votanteSvc.Register(ctx, admin(1), input)
	require.NoError(t, err)

	// Same rut again in the same periodo is rejected, even on another mesa.
	_, err = f.votanteSvc.Register(ctx, admin(1), input)
	assert.ErrorIs(t, err, domain.ErrDuplicateRut)

	// The same person may vote again in a later periodo.
	_, err = f.votanteSvc.Register(ctx, admin(1), &RegisterVotanteInput{
		MesaID:  mesa24.ID,
		Periodo: 2024,
		Rut:     "12.345.678-5",
		Nombre:  "Juana Pérez",
	})
	assert.NoError(t, err)
}

func TestRegisterVotante_RequiresOpenMesa(t *testing.T) {
	f := newFixture(t)

	sede := f.sede(t, "Sede Centro")
	cerrada := f.mesa(t, sede.ID, "Mesa 1", 2025, false)

	_, err := f.votanteSvc.Register(context.Background(), admin(1), &RegisterVotanteInput{
		MesaID:  cerrada.ID,
		Periodo: 2025,
		Rut:     "9.876.543-2",
		Nombre:  "Pedro Soto",
	})
	assert.ErrorIs(t, err, domain.ErrMesaCerrada)
}

func TestRegisterVotante_DigitadorNeedsPermiso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, true)
	digitador := f.user(t, "digitador1", domain.RoleDigitador)
	actor := Actor{UserID: digitador.ID, Rol: domain.RoleDigitador}

	input := &RegisterVotanteInput{
		MesaID:  mesa.ID,
		Periodo: 2025,
		Rut:     "7.654.321-0",
		Nombre:  "Rosa Díaz",
	}

	_, err := f.votanteSvc.Register(ctx, actor, input)
	assert.ErrorIs(t, err, domain.ErrNoPermiso)

	f.permiso(t, 2025, sede.ID, mesa.ID, digitador.ID)
	votante, err := f.votanteSvc.Register(ctx, actor, input)
	require.NoError(t, err)
	assert.Equal(t, "Rosa Díaz", votante.Nombre)

	listed, err := f.votanteSvc.ListByMesa(ctx, actor, mesa.ID, 2025)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestRegisterVotante_MinistroDeFeCannotRegister(t *testing.T) {
	f := newFixture(t)

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, true)

	_, err := f.votanteSvc.Register(context.Background(), Actor{UserID: 5, Rol: domain.RoleMinistroDeFe}, &RegisterVotanteInput{
		MesaID:  mesa.ID,
		Periodo: 2025,
		Rut:     "5.555.555-5",
		Nombre:  "Luis Rojas",
	})
	assert.ErrorIs(t, err, ErrRoleCannotRegister)
}
