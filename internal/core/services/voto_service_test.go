package services

import (
	"context"
	"testing"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterTotals_InsertsAndClosesMesa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, true)
	tipo := f.tipo(t, "Proyectos Comunales")
	f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)

	out, err := f.votoSvc.RegisterTotals(ctx, admin(1), &RegisterTotalsInput{
		Periodo: 2025,
		MesaID:  mesa.ID,
		Votos: []BucketTotal{
			{IDProyecto: "C1", TipoVoto: "Normal", Total: 5},
			{TipoVoto: "Blanco", Total: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, out.Inserted)
	assert.Equal(t, 0, out.Deleted)
	assert.True(t, out.MesaCerrada)
	assert.EqualValues(t, 7, f.votoCount(t, mesa.ID))

	var reloaded models.Mesa
	require.NoError(t, f.db.First(&reloaded, mesa.ID).Error)
	assert.False(t, reloaded.EstadoMesa, "mesa must close after registration")
}

func TestRegisterTotals_DecrementsToDesiredTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Norte")
	mesa := f.mesa(t, sede.ID, "Mesa 2", 2025, true)
	tipo := f.tipo(t, "Proyectos Comunales")
	f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)

	_, err := f.votoSvc.RegisterTotals(ctx, admin(1), &RegisterTotalsInput{
		Periodo: 2025,
		MesaID:  mesa.ID,
		Votos: []BucketTotal{
			{IDProyecto: "C1", TipoVoto: "Normal", Total: 5},
			{TipoVoto: "Blanco", Total: 2},
		},
	})
	require.NoError(t, err)

	// Reopen and submit a corrected, lower total for C1.
	_, err = f.mesaSvc.SetEstado(ctx, admin(1), mesa.ID, true)
	require.NoError(t, err)

	out, err := f.votoSvc.RegisterTotals(ctx, admin(1), &RegisterTotalsInput{
		Periodo: 2025,
		MesaID:  mesa.ID,
		Votos: []BucketTotal{
			{IDProyecto: "C1", TipoVoto: "Normal", Total: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Inserted)
	assert.Equal(t, 2, out.Deleted)
	// Blanco bucket was not in the batch, so its 2 rows stay untouched.
	assert.EqualValues(t, 5, f.votoCount(t, mesa.ID))

	counts, err := f.votoSvc.GetCounts(ctx, admin(1), mesa.ID, 2025)
	require.NoError(t, err)
	byTipo := map[string]int64{}
	for _, c := range counts {
		byTipo[c.TipoVoto] += c.Cantidad
	}
	assert.EqualValues(t, 3, byTipo["Normal"])
	assert.EqualValues(t, 2, byTipo["Blanco"])
}

func TestRegisterTotals_RejectsClosedMesa(t *testing.T) {
	f := newFixture(t)

	sede := f.sede(t, "Sede Sur")
	mesa := f.mesa(t, sede.ID, "Mesa 3", 2025, false)

	_, err := f.votoSvc.RegisterTotals(context.Background(), admin(1), &RegisterTotalsInput{
		Periodo: 2025,
		MesaID:  mesa.ID,
		Votos:   []BucketTotal{{TipoVoto: "Blanco", Total: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMesaCerrada)
	assert.EqualValues(t, 0, f.votoCount(t, mesa.ID))
}

func TestRegisterTotals_RejectsUnknownProyecto(t *testing.T) {
	f := newFixture(t)

	sede := f.sede(t, "Sede Este")
	mesa := f.mesa(t, sede.ID, "Mesa 4", 2025, true)
	tipo := f.tipo(t, "Proyectos Comunales")
	// The project exists, but only in another periodo.
	f.proyecto(t, "C9", "Luminarias", 2024, tipo.ID, nil)

	_, err := f.votoSvc.RegisterTotals(context.Background(), admin(1), &RegisterTotalsInput{
		Periodo: 2025,
		MesaID:  mesa.ID,
		Votos:   []BucketTotal{{IDProyecto: "C9", TipoVoto: "Normal", Total: 4}},
	})
	assert.ErrorIs(t, err, domain.ErrProyectoNotFound)

	// The whole batch rolls back: the mesa stays open with no votes.
	var reloaded models.Mesa
	require.NoError(t, f.db.First(&reloaded, mesa.ID).Error)
	assert.True(t, reloaded.EstadoMesa)
	assert.EqualValues(t, 0, f.votoCount(t, mesa.ID))
}

func TestRegisterTotals_ValidatesPayload(t *testing.T) {
	f := newFixture(t)

	sede := f.sede(t, "Sede Oeste")
	mesa := f.mesa(t, sede.ID, "Mesa 5", 2025, true)
	tipo := f.tipo(t, "Proyectos Comunales")
	f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)

	cases := []struct {
		name  string
		votos []BucketTotal
		want  error
	}{
		{"negative total", []BucketTotal{{IDProyecto: "C1", TipoVoto: "Normal", Total: -1}}, domain.ErrNegativeTotal},
		{"invalid tipo", []BucketTotal{{TipoVoto: "Impugnado", Total: 1}}, domain.ErrInvalidTipoVoto},
		{"normal without code", []BucketTotal{{TipoVoto: "Normal", Total: 1}}, domain.ErrProyectoNotFound},
		{"duplicate bucket", []BucketTotal{
			{IDProyecto: "C1", TipoVoto: "Normal", Total: 1},
			{IDProyecto: "C1", TipoVoto: "Normal", Total: 2},
		}, ErrDuplicateBucket},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.votoSvc.RegisterTotals(context.Background(), admin(1), &RegisterTotalsInput{
				Periodo: 2025,
				MesaID:  mesa.ID,
				Votos:   tc.votos,
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.EqualValues(t, 0, f.votoCount(t, mesa.ID))
}

func TestRegisterTotals_RoleAndPermisoChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 6", 2025, true)
	tipo := f.tipo(t, "Proyectos Comunales")
	f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)
	operador := f.user(t, "encargado1", domain.RoleEncargado)

	input := &RegisterTotalsInput{
		Periodo: 2025,
		MesaID:  mesa.ID,
		Votos:   []BucketTotal{{IDProyecto: "C1", TipoVoto: "Normal", Total: 2}},
	}

	// Digitador records voters, not votes.
	_, err := f.votoSvc.RegisterTotals(ctx, Actor{UserID: 9, Rol: domain.RoleDigitador}, input)
	assert.ErrorIs(t, err, ErrRoleCannotVote)

	// Encargado without a permiso on the mesa is rejected.
	_, err = f.votoSvc.RegisterTotals(ctx, encargado(operador.ID), input)
	assert.ErrorIs(t, err, domain.ErrNoPermiso)

	// With the grant the same submission succeeds.
	f.permiso(t, 2025, sede.ID, mesa.ID, operador.ID)
	out, err := f.votoSvc.RegisterTotals(ctx, encargado(operador.ID), input)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Inserted)
}

func TestRegisterTotals_MesaFromOtherPeriodoNotFound(t *testing.T) {
	f := newFixture(t)

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 7", 2024, true)

	_, err := f.votoSvc.RegisterTotals(context.Background(), admin(1), &RegisterTotalsInput{
		Periodo: 2025,
		MesaID:  mesa.ID,
		Votos:   []BucketTotal{{TipoVoto: "Nulo", Total: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMesaNotFound)
}

func TestGetCounts_RequiresPermiso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 8", 2025, true)
	operador := f.user(t, "ministro1", domain.RoleMinistroDeFe)

	_, err := f.votoSvc.GetCounts(ctx, Actor{UserID: operador.ID, Rol: domain.RoleMinistroDeFe}, mesa.ID, 2025)
	assert.ErrorIs(t, err, domain.ErrNoPermiso)

	f.permiso(t, 2025, sede.ID, mesa.ID, operador.ID)
	counts, err := f.votoSvc.GetCounts(ctx, Actor{UserID: operador.ID, Rol: domain.RoleMinistroDeFe}, mesa.ID, 2025)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
