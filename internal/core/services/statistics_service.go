package services

import (
	"context"
	"sort"

	"muni-votaciones/internal/adapters/persistence/models"
	"muni-votaciones/internal/core/domain"

	"gorm.io/gorm"
)

// StatisticsService computes the read-side aggregates: rankings,
// category totals, winners and per-sede participation. Every query runs
// over the same mesa set: Cerrada mesas of the periodo, narrowed to
// permiso-granted mesas for scoped roles. Abierta mesas never leak
// in-progress tallies into a report.
type StatisticsService struct {
	db *gorm.DB
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

// ============================================================
// Output types
// ============================================================

// ProyectoRanking is one row of the per-project ranking
type ProyectoRanking struct {
	IDProyecto   string  `json:"id_proyecto"`
	Nombre       string  `json:"nombre"`
	Tipo         string  `json:"tipo"`
	Categoria    string  `json:"categoria"`
	Sector       string  `json:"sector,omitempty"`
	Votos        int64   `json:"votos"`
	Porcentaje   float64 `json:"porcentaje"`
	PorcentajeCategoria float64 `json:"porcentaje_categoria"`
}

// CategoriaTotal aggregates one category
type CategoriaTotal struct {
	Categoria string           `json:"categoria"`
	Votos     int64            `json:"votos"`
	Lider     *ProyectoRanking `json:"lider,omitempty"`
}

// SummaryData is the top-level statistics response
type SummaryData struct {
	Periodo      int              `json:"periodo"`
	VotosNormal  int64            `json:"votos_normal"`
	VotosBlanco  int64            `json:"votos_blanco"`
	VotosNulo    int64            `json:"votos_nulo"`
	VotosTotal   int64            `json:"votos_total"`
	Votantes     int64            `json:"votantes"`
	Categorias   []CategoriaTotal `json:"categorias"`
}

// DetailedData is the full ranking response
type DetailedData struct {
	Periodo  int               `json:"periodo"`
	Total    int64             `json:"total_votos_normal"`
	Ranking  []ProyectoRanking `json:"ranking"`
}

// SectorWinner is the winning project of one sector within a category
type SectorWinner struct {
	Sector   string          `json:"sector"`
	Proyecto ProyectoRanking `json:"proyecto"`
}

// CategoryWinners groups winners of one non-communal category
type CategoryWinners struct {
	Categoria string         `json:"categoria"`
	Sectores  []SectorWinner `json:"sectores"`
}

// WinnersData is the winners response: one overall communal winner plus
// per-sector winners for every other category
type WinnersData struct {
	Periodo    int               `json:"periodo"`
	Comunal    *ProyectoRanking  `json:"comunal,omitempty"`
	Categorias []CategoryWinners `json:"categorias"`
}

// SedeParticipation is the per-sede breakdown
type SedeParticipation struct {
	SedeID      uint   `json:"sede_id"`
	Sede        string `json:"sede"`
	Mesas       int64  `json:"mesas"`
	VotosNormal int64  `json:"votos_normal"`
	VotosBlanco int64  `json:"votos_blanco"`
	VotosNulo   int64  `json:"votos_nulo"`
	Votantes    int64  `json:"votantes"`
}

// MesaStatusData summarizes the open/closed split of the scoped mesa set
type MesaStatusData struct {
	Periodo       int   `json:"periodo"`
	Total         int64 `json:"total"`
	Abiertas      int64 `json:"abiertas"`
	Cerradas      int64 `json:"cerradas"`
	TodasCerradas bool  `json:"todas_cerradas"`
}

// ============================================================
// Mesa-set scoping
// ============================================================

// closedMesaSet returns a subquery selecting the IDs of the Cerrada
// mesas visible to the actor in the periodo.
func (s *StatisticsService) closedMesaSet(ctx context.Context, actor Actor, periodo int) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&models.Mesa{}).
		Select("mesas.id").
		Where("mesas.periodo = ? AND mesas.estado_mesa = ?", periodo, false)

	if actor.Rol.ScopedByPermiso() {
		query = query.Where(`EXISTS (
			SELECT 1 FROM permisos
			WHERE permisos.mesa_id = mesas.id
			  AND permisos.periodo = mesas.periodo
			  AND permisos.id_usuario = ?)`, actor.UserID)
	}

	return query
}

// countVotosByTipo counts ballots of one tipo over the scoped mesa set.
func (s *StatisticsService) countVotosByTipo(ctx context.Context, actor Actor, periodo int, tipo domain.TipoVoto) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Voto{}).
		Where("periodo = ? AND tipo_voto = ?", periodo, string(tipo)).
		Where("mesa_id IN (?)", s.closedMesaSet(ctx, actor, periodo)).
		Count(&count).Error
	return count, err
}

// proyectoVotos holds one project with its vote count over the scoped set.
type proyectoVotos struct {
	ID         uint
	IDProyecto string
	Nombre     string
	TipoNombre string
	Sector     string
	Votos      int64
}

// rankedProyectos loads every project of the periodo with its Normal
// vote count over the scoped mesa set, ordered by votes DESC with the
// project code ASC as the deterministic tiebreak.
func (s *StatisticsService) rankedProyectos(ctx context.Context, actor Actor, periodo int) ([]proyectoVotos, error) {
	// Vote counts per project over the scoped closed-mesa set.
	type votoCount struct {
		ProyectoID uint
		Votos      int64
	}
	var counts []votoCount
	err := s.db.WithContext(ctx).
		Model(&models.Voto{}).
		Select("proyecto_id, COUNT(*) AS votos").
		Where("periodo = ? AND tipo_voto = ?", periodo, string(domain.VotoNormal)).
		Where("mesa_id IN (?)", s.closedMesaSet(ctx, actor, periodo)).
		Group("proyecto_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	votosPorProyecto := make(map[uint]int64, len(counts))
	for _, c := range counts {
		votosPorProyecto[c.ProyectoID] = c.Votos
	}

	var proyectos []models.Proyecto
	err = s.db.WithContext(ctx).
		Preload("TipoProyecto").
		Preload("Sector").
		Where("periodo = ?", periodo).
		Find(&proyectos).Error
	if err != nil {
		return nil, err
	}

	ranked := make([]proyectoVotos, 0, len(proyectos))
	for _, p := range proyectos {
		sector := ""
		if p.Sector != nil {
			sector = p.Sector.Nombre
		}
		ranked = append(ranked, proyectoVotos{
			ID:         p.ID,
			IDProyecto: p.IDProyecto,
			Nombre:     p.Nombre,
			TipoNombre: p.TipoProyecto.Nombre,
			Sector:     sector,
			Votos:      votosPorProyecto[p.ID],
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Votos != ranked[j].Votos {
			return ranked[i].Votos > ranked[j].Votos
		}
		return ranked[i].IDProyecto < ranked[j].IDProyecto
	})

	return ranked, nil
}

func pct(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

func toRanking(p proyectoVotos, grandTotal, categoryTotal int64) ProyectoRanking {
	return ProyectoRanking{
		IDProyecto:          p.IDProyecto,
		Nombre:              p.Nombre,
		Tipo:                p.TipoNombre,
		Categoria:           domain.CategoriaFromNombre(p.TipoNombre).String(),
		Sector:              p.Sector,
		Votos:               p.Votos,
		Porcentaje:          pct(p.Votos, grandTotal),
		PorcentajeCategoria: pct(p.Votos, categoryTotal),
	}
}

// ============================================================
// Aggregations
// ============================================================

// GetSummary computes the top-level totals and per-category leaders.
func (s *StatisticsService) GetSummary(ctx context.Context, actor Actor, periodo int) (*SummaryData, error) {
	data := &SummaryData{Periodo: periodo}

	var err error
	if data.VotosNormal, err = s.countVotosByTipo(ctx, actor, periodo, domain.VotoNormal); err != nil {
		return nil, err
	}
	if data.VotosBlanco, err = s.countVotosByTipo(ctx, actor, periodo, domain.VotoBlanco); err != nil {
		return nil, err
	}
	if data.VotosNulo, err = s.countVotosByTipo(ctx, actor, periodo, domain.VotoNulo); err != nil {
		return nil, err
	}
	data.VotosTotal = data.VotosNormal + data.VotosBlanco + data.VotosNulo

	err = s.db.WithContext(ctx).
		Model(&models.Votante{}).
		Where("periodo = ?", periodo).
		Where("mesa_id IN (?)", s.closedMesaSet(ctx, actor, periodo)).
		Count(&data.Votantes).Error
	if err != nil {
		return nil, err
	}

	ranked, err := s.rankedProyectos(ctx, actor, periodo)
	if err != nil {
		return nil, err
	}

	categoryTotals := categoryTotalsOf(ranked)
	for _, cat := range orderedCategorias(categoryTotals) {
		total := categoryTotals[cat]
		entry := CategoriaTotal{Categoria: cat.String(), Votos: total}
		// Leader: first ranked project of the category (ranking already
		// carries the deterministic order).
		for _, p := range ranked {
			if domain.CategoriaFromNombre(p.TipoNombre) == cat {
				r := toRanking(p, data.VotosNormal, total)
				entry.Lider = &r
				break
			}
		}
		data.Categorias = append(data.Categorias, entry)
	}

	return data, nil
}

// GetDetailed computes the full per-project ranking.
func (s *StatisticsService) GetDetailed(ctx context.Context, actor Actor, periodo int) (*DetailedData, error) {
	ranked, err := s.rankedProyectos(ctx, actor, periodo)
	if err != nil {
		return nil, err
	}

	var grandTotal int64
	for _, p := range ranked {
		grandTotal += p.Votos
	}
	categoryTotals := categoryTotalsOf(ranked)

	data := &DetailedData{Periodo: periodo, Total: grandTotal}
	for _, p := range ranked {
		data.Ranking = append(data.Ranking,
			toRanking(p, grandTotal, categoryTotals[domain.CategoriaFromNombre(p.TipoNombre)]))
	}

	return data, nil
}

// GetWinners computes the overall communal winner and the per-sector
// winner of every other category. Ties resolve to the lower project code.
func (s *StatisticsService) GetWinners(ctx context.Context, actor Actor, periodo int) (*WinnersData, error) {
	ranked, err := s.rankedProyectos(ctx, actor, periodo)
	if err != nil {
		return nil, err
	}

	var grandTotal int64
	for _, p := range ranked {
		grandTotal += p.Votos
	}
	categoryTotals := categoryTotalsOf(ranked)

	data := &WinnersData{Periodo: periodo}

	// Comunal: a single overall winner by raw vote count.
	for _, p := range ranked {
		if domain.CategoriaFromNombre(p.TipoNombre) == domain.CategoriaComunal {
			r := toRanking(p, grandTotal, categoryTotals[domain.CategoriaComunal])
			data.Comunal = &r
			break
		}
	}

	// Every other category: one winner per sector. ranked order makes
	// the first project seen per (category, sector) the winner.
	type catSector struct {
		cat    domain.Categoria
		sector string
	}
	winners := make(map[catSector]proyectoVotos)
	sectorOrder := make(map[domain.Categoria][]string)
	for _, p := range ranked {
		cat := domain.CategoriaFromNombre(p.TipoNombre)
		if cat == domain.CategoriaComunal {
			continue
		}
		sector := p.Sector
		if sector == "" {
			sector = "Sin sector"
		}
		key := catSector{cat: cat, sector: sector}
		if _, ok := winners[key]; !ok {
			winners[key] = p
			sectorOrder[cat] = append(sectorOrder[cat], sector)
		}
	}

	for _, cat := range orderedCategorias(categoryTotals) {
		if cat == domain.CategoriaComunal {
			continue
		}
		sectores := sectorOrder[cat]
		if len(sectores) == 0 {
			continue
		}
		sort.Strings(sectores)
		cw := CategoryWinners{Categoria: cat.String()}
		for _, sector := range sectores {
			p := winners[catSector{cat: cat, sector: sector}]
			cw.Sectores = append(cw.Sectores, SectorWinner{
				Sector:   sector,
				Proyecto: toRanking(p, grandTotal, categoryTotals[cat]),
			})
		}
		data.Categorias = append(data.Categorias, cw)
	}

	return data, nil
}

// GetPollingPlaces computes the per-sede participation breakdown.
func (s *StatisticsService) GetPollingPlaces(ctx context.Context, actor Actor, periodo int) ([]SedeParticipation, error) {
	var rows []SedeParticipation
	err := s.db.WithContext(ctx).
		Table("sedes").
		Select(`sedes.id AS sede_id, sedes.nombre AS sede,
			COUNT(DISTINCT mesas.id) AS mesas,
			COALESCE(SUM(CASE WHEN votos.tipo_voto = 'Normal' THEN 1 ELSE 0 END), 0) AS votos_normal,
			COALESCE(SUM(CASE WHEN votos.tipo_voto = 'Blanco' THEN 1 ELSE 0 END), 0) AS votos_blanco,
			COALESCE(SUM(CASE WHEN votos.tipo_voto = 'Nulo' THEN 1 ELSE 0 END), 0) AS votos_nulo`).
		Joins("JOIN mesas ON mesas.sede_id = sedes.id AND mesas.periodo = ?", periodo).
		Joins("LEFT JOIN votos ON votos.mesa_id = mesas.id AND votos.periodo = mesas.periodo").
		Where("mesas.id IN (?)", s.closedMesaSet(ctx, actor, periodo)).
		Group("sedes.id, sedes.nombre").
		Order("sedes.nombre ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Votante headcounts per sede, same mesa set.
	for i := range rows {
		err = s.db.WithContext(ctx).
			Model(&models.Votante{}).
			Joins("JOIN mesas ON mesas.id = votantes.mesa_id").
			Where("votantes.periodo = ? AND mesas.sede_id = ?", periodo, rows[i].SedeID).
			Where("votantes.mesa_id IN (?)", s.closedMesaSet(ctx, actor, periodo)).
			Count(&rows[i].Votantes).Error
		if err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// GetMesaStatus summarizes the open/closed split of the mesas visible to
// the actor. TodasCerradas gates the Excel export.
func (s *StatisticsService) GetMesaStatus(ctx context.Context, actor Actor, periodo int) (*MesaStatusData, error) {
	base := func() *gorm.DB {
		query := s.db.WithContext(ctx).
			Model(&models.Mesa{}).
			Where("mesas.periodo = ?", periodo)
		if actor.Rol.ScopedByPermiso() {
			query = query.Where(`EXISTS (
				SELECT 1 FROM permisos
				WHERE permisos.mesa_id = mesas.id
				  AND permisos.periodo = mesas.periodo
				  AND permisos.id_usuario = ?)`, actor.UserID)
		}
		return query
	}

	data := &MesaStatusData{Periodo: periodo}
	if err := base().Count(&data.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("estado_mesa = ?", true).Count(&data.Abiertas).Error; err != nil {
		return nil, err
	}
	data.Cerradas = data.Total - data.Abiertas
	data.TodasCerradas = data.Total > 0 && data.Abiertas == 0

	return data, nil
}

// ============================================================
// helpers
// ============================================================

func categoryTotalsOf(ranked []proyectoVotos) map[domain.Categoria]int64 {
	totals := make(map[domain.Categoria]int64)
	for _, p := range ranked {
		totals[domain.CategoriaFromNombre(p.TipoNombre)] += p.Votos
	}
	return totals
}

// orderedCategorias returns the categories present, in declaration order.
func orderedCategorias(totals map[domain.Categoria]int64) []domain.Categoria {
	all := []domain.Categoria{
		domain.CategoriaComunal,
		domain.CategoriaInfantil,
		domain.CategoriaJuvenil,
		domain.CategoriaSectorial,
		domain.CategoriaOtra,
	}
	present := make([]domain.Categoria, 0, len(all))
	for _, c := range all {
		if _, ok := totals[c]; ok {
			present = append(present, c)
		}
	}
	return present
}
