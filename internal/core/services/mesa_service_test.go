package services

import (
	"context"
	"testing"

	"muni-votaciones/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMesa_StartsAbierta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")

	mesa, err := f.mesaSvc.CreateMesa(ctx, &CreateMesaInput{
		Nombre: "Mesa 1", SedeID: sede.ID, Periodo: 2025,
	})
	require.NoError(t, err)
	assert.True(t, mesa.EstadoMesa)

	_, err = f.mesaSvc.CreateMesa(ctx, &CreateMesaInput{
		Nombre: "Mesa X", SedeID: 999, Periodo: 2025,
	})
	assert.ErrorIs(t, err, domain.ErrSedeNotFound)
}

func TestSetEstado_RoleAndPermisoChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, true)
	operador := f.user(t, "encargado1", domain.RoleEncargado)
	digitador := f.user(t, "digitador1", domain.RoleDigitador)

	// Digitador cannot toggle mesa state at all.
	_, err := f.mesaSvc.SetEstado(ctx, Actor{UserID: digitador.ID, Rol: domain.RoleDigitador}, mesa.ID, false)
	assert.ErrorIs(t, err, ErrRoleCannotToggle)

	// Encargado needs a permiso on the mesa.
	_, err = f.mesaSvc.SetEstado(ctx, encargado(operador.ID), mesa.ID, false)
	assert.ErrorIs(t, err, domain.ErrNoPermiso)

	f.permiso(t, 2025, sede.ID, mesa.ID, operador.ID)
	updated, err := f.mesaSvc.SetEstado(ctx, encargado(operador.ID), mesa.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.EstadoMesa)

	// Re-opening is allowed.
	updated, err = f.mesaSvc.SetEstado(ctx, encargado(operador.ID), mesa.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.EstadoMesa)
}

func TestDeleteMesa_GuardedByVotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, false)
	seedBallots(t, f, mesa.ID, 2025, domain.VotoBlanco, nil, 1)

	err := f.mesaSvc.DeleteMesa(ctx, mesa.ID)
	assert.ErrorIs(t, err, domain.ErrMesaHasVotes)

	empty := f.mesa(t, sede.ID, "Mesa 2", 2025, true)
	require.NoError(t, f.mesaSvc.DeleteMesa(ctx, empty.ID))
}

func TestListForActor_ScopesByPermiso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	m1 := f.mesa(t, sede.ID, "Mesa 1", 2025, true)
	f.mesa(t, sede.ID, "Mesa 2", 2025, true)
	f.mesa(t, sede.ID, "Mesa vieja", 2024, true)
	operador := f.user(t, "encargado1", domain.RoleEncargado)
	f.permiso(t, 2025, sede.ID, m1.ID, operador.ID)

	all, err := f.mesaSvc.ListForActor(ctx, admin(1), 2025)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := f.mesaSvc.ListForActor(ctx, encargado(operador.ID), 2025)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Mesa 1", scoped[0].Nombre)
	assert.Equal(t, "Sede Centro", scoped[0].SedeNombre)
}
