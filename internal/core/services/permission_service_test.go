package services

import (
	"context"
	"testing"

	"muni-votaciones/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanActOnMesa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, true)
	enc := f.user(t, "encargado1", domain.RoleEncargado)

	// Administrador is never scoped.
	allowed, err := f.permission.CanActOnMesa(ctx, admin(99), 2025, mesa.ID)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Scoped role without a grant is denied.
	allowed, err = f.permission.CanActOnMesa(ctx, encargado(enc.ID), 2025, mesa.ID)
	require.NoError(t, err)
	assert.False(t, allowed)

	f.permiso(t, 2025, sede.ID, mesa.ID, enc.ID)
	allowed, err = f.permission.CanActOnMesa(ctx, encargado(enc.ID), 2025, mesa.ID)
	require.NoError(t, err)
	assert.True(t, allowed)

	// The grant is periodo-bound.
	allowed, err = f.permission.CanActOnMesa(ctx, encargado(enc.ID), 2024, mesa.ID)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Unknown stored role values never gain access.
	allowed, err = f.permission.CanActOnMesa(ctx, Actor{UserID: enc.ID, Rol: domain.Role("desconocido")}, 2025, mesa.ID)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestGrantsFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sede := f.sede(t, "Sede Centro")
	mesa1 := f.mesa(t, sede.ID, "Mesa 1", 2025, true)
	mesa2 := f.mesa(t, sede.ID, "Mesa 2", 2025, true)
	enc1 := f.user(t, "encargado1", domain.RoleEncargado)
	enc2 := f.user(t, "encargado2", domain.RoleEncargado)

	f.permiso(t, 2025, sede.ID, mesa1.ID, enc1.ID)
	f.permiso(t, 2025, sede.ID, mesa2.ID, enc2.ID)

	// Scoped role sees only its own grants.
	grants, err := f.permission.GrantsFor(ctx, encargado(enc1.ID), 2025)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, mesa1.ID, grants[0].MesaID)

	// Administrador sees every grant of the periodo.
	grants, err = f.permission.GrantsFor(ctx, admin(99), 2025)
	require.NoError(t, err)
	assert.Len(t, grants, 2)

	// Other periodos are empty.
	grants, err = f.permission.GrantsFor(ctx, encargado(enc1.ID), 2024)
	require.NoError(t, err)
	assert.Empty(t, grants)
}
