package services

import (
	"context"
	"testing"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBallots inserts ballot rows directly, bypassing the service write path.
func seedBallots(t *testing.T, f *testFixture, mesaID uint, periodo int, tipo domain.TipoVoto, proyectoID *uint, n int) {
	t.Helper()
	votos := make([]models.Voto, n)
	for i := range votos {
		votos[i] = models.Voto{Periodo: periodo, MesaID: mesaID, TipoVoto: string(tipo), ProyectoID: proyectoID}
	}
	require.NoError(t, f.db.Create(&votos).Error)
}

func TestStatistics_OnlyClosedMesasCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	cerrada := f.mesa(t, sede.ID, "Mesa 1", 2025, false)
	abierta := f.mesa(t, sede.ID, "Mesa 2", 2025, true)
	tipo := f.tipo(t, "Proyectos Comunales")
	proyecto := f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)

	seedBallots(t, f, cerrada.ID, 2025, domain.VotoNormal, &proyecto.ID, 4)
	seedBallots(t, f, cerrada.ID, 2025, domain.VotoBlanco, nil, 1)
	// In-progress tallies on the open mesa must not leak into reports.
	seedBallots(t, f, abierta.ID, 2025, domain.VotoNormal, &proyecto.ID, 10)

	summary, err := f.statsSvc.GetSummary(ctx, admin(1), 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 4, summary.VotosNormal)
	assert.EqualValues(t, 1, summary.VotosBlanco)
	assert.EqualValues(t, 5, summary.VotosTotal)

	// Closing the second mesa brings its ballots in.
	_, err = f.mesaSvc.SetEstado(ctx, admin(1), abierta.ID, false)
	require.NoError(t, err)

	summary, err = f.statsSvc.GetSummary(ctx, admin(1), 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 14, summary.VotosNormal)
}

func TestStatistics_ScopedRoleSeesOnlyGrantedMesas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	m1 := f.mesa(t, sede.ID, "Mesa 1", 2025, false)
	m2 := f.mesa(t, sede.ID, "Mesa 2", 2025, false)
	tipo := f.tipo(t, "Proyectos Comunales")
	proyecto := f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)
	operador := f.user(t, "encargado1", domain.RoleEncargado)
	f.permiso(t, 2025, sede.ID, m1.ID, operador.ID)

	seedBallots(t, f, m1.ID, 2025, domain.VotoNormal, &proyecto.ID, 3)
	seedBallots(t, f, m2.ID, 2025, domain.VotoNormal, &proyecto.ID, 5)

	scoped, err := f.statsSvc.GetSummary(ctx, encargado(operador.ID), 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 3, scoped.VotosNormal)

	unscoped, err := f.statsSvc.GetSummary(ctx, admin(1), 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 8, unscoped.VotosNormal)
}

func TestDetailed_RankingOrderAndTiebreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, false)
	tipo := f.tipo(t, "Proyectos Comunales")
	pa := f.proyecto(t, "C2", "Luminarias", 2025, tipo.ID, nil)
	pb := f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)
	pc := f.proyecto(t, "C3", "Multicancha", 2025, tipo.ID, nil)

	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &pa.ID, 4)
	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &pb.ID, 4)
	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &pc.ID, 2)

	detailed, err := f.statsSvc.GetDetailed(ctx, admin(1), 2025)
	require.NoError(t, err)
	require.Len(t, detailed.Ranking, 3)
	assert.EqualValues(t, 10, detailed.Total)

	// Equal counts resolve by project code ascending.
	assert.Equal(t, "C1", detailed.Ranking[0].IDProyecto)
	assert.Equal(t, "C2", detailed.Ranking[1].IDProyecto)
	assert.Equal(t, "C3", detailed.Ranking[2].IDProyecto)

	assert.InDelta(t, 40.0, detailed.Ranking[0].Porcentaje, 0.01)
	assert.InDelta(t, 20.0, detailed.Ranking[2].Porcentaje, 0.01)
	assert.Equal(t, "Comunal", detailed.Ranking[0].Categoria)
}

func TestWinners_ComunalOverallAndPerSector(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	mesa := f.mesa(t, sede.ID, "Mesa 1", 2025, false)
	comunal := f.tipo(t, "Proyectos Comunales")
	sectorial := f.tipo(t, "Proyectos Sectoriales")
	norte := f.sector(t, "Norte")
	sur := f.sector(t, "Sur")

	c1 := f.proyecto(t, "C1", "Plaza Activa", 2025, comunal.ID, nil)
	c2 := f.proyecto(t, "C2", "Luminarias", 2025, comunal.ID, nil)
	s1 := f.proyecto(t, "S1", "Sede Vecinal Norte", 2025, sectorial.ID, &norte.ID)
	s2 := f.proyecto(t, "S2", "Juegos Norte", 2025, sectorial.ID, &norte.ID)
	s3 := f.proyecto(t, "S3", "Paradero Sur", 2025, sectorial.ID, &sur.ID)

	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &c1.ID, 6)
	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &c2.ID, 3)
	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &s1.ID, 2)
	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &s2.ID, 5)
	seedBallots(t, f, mesa.ID, 2025, domain.VotoNormal, &s3.ID, 1)

	winners, err := f.statsSvc.GetWinners(ctx, admin(1), 2025)
	require.NoError(t, err)

	require.NotNil(t, winners.Comunal)
	assert.Equal(t, "C1", winners.Comunal.IDProyecto)

	require.Len(t, winners.Categorias, 1)
	cat := winners.Categorias[0]
	assert.Equal(t, "Sectorial", cat.Categoria)
	require.Len(t, cat.Sectores, 2)

	bySector := map[string]string{}
	for _, sw := range cat.Sectores {
		bySector[sw.Sector] = sw.Proyecto.IDProyecto
	}
	assert.Equal(t, "S2", bySector["Norte"])
	assert.Equal(t, "S3", bySector["Sur"])
}

func TestMesaStatus_GatesExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sede := f.sede(t, "Sede Centro")
	f.mesa(t, sede.ID, "Mesa 1", 2025, false)
	abierta := f.mesa(t, sede.ID, "Mesa 2", 2025, true)
	f.tipo(t, "Proyectos Comunales")

	status, err := f.statsSvc.GetMesaStatus(ctx, admin(1), 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 2, status.Total)
	assert.EqualValues(t, 1, status.Abiertas)
	assert.False(t, status.TodasCerradas)

	_, _, err = f.exportSvc.ResultsWorkbook(ctx, admin(1), 2025)
	assert.ErrorIs(t, err, ErrMesasAbiertas)

	_, err = f.mesaSvc.SetEstado(ctx, admin(1), abierta.ID, false)
	require.NoError(t, err)

	buf, filename, err := f.exportSvc.ResultsWorkbook(ctx, admin(1), 2025)
	require.NoError(t, err)
	assert.Equal(t, "resultados_votacion_2025.xlsx", filename)
	assert.Greater(t, buf.Len(), 0)
}

func TestPollingPlaces_GroupsBySede(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	centro := f.sede(t, "Sede Centro")
	norte := f.sede(t, "Sede Norte")
	m1 := f.mesa(t, centro.ID, "Mesa 1", 2025, false)
	m2 := f.mesa(t, norte.ID, "Mesa 2", 2025, false)
	tipo := f.tipo(t, "Proyectos Comunales")
	proyecto := f.proyecto(t, "C1", "Plaza Activa", 2025, tipo.ID, nil)

	seedBallots(t, f, m1.ID, 2025, domain.VotoNormal, &proyecto.ID, 3)
	seedBallots(t, f, m1.ID, 2025, domain.VotoNulo, nil, 1)
	seedBallots(t, f, m2.ID, 2025, domain.VotoNormal, &proyecto.ID, 2)

	rows, err := f.statsSvc.GetPollingPlaces(ctx, admin(1), 2025)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by sede name.
	assert.Equal(t, "Sede Centro", rows[0].Sede)
	assert.EqualValues(t, 3, rows[0].VotosNormal)
	assert.EqualValues(t, 1, rows[0].VotosNulo)
	assert.Equal(t, "Sede Norte", rows[1].Sede)
	assert.EqualValues(t, 2, rows[1].VotosNormal)
}
