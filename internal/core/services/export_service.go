package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
)

// Export service errors
var (
	ErrMesasAbiertas = errors.New("cannot export while mesas remain open")
)

// ExportService renders the final results workbook. Exporting is only
// allowed once every visible mesa of the periodo is Cerrada, so the
// workbook always reflects a finished count.
type ExportService struct {
	stats *StatisticsService
}

// NewExportService creates a new export service
func NewExportService(stats *StatisticsService) *ExportService {
	return &ExportService{stats: stats}
}

// ResultsWorkbook builds the .xlsx results file for the periodo:
// a ranking sheet, a winners sheet and a per-sede participation sheet.
func (s *ExportService) ResultsWorkbook(ctx context.Context, actor Actor, periodo int) (*bytes.Buffer, string, error) {
	status, err := s.stats.GetMesaStatus(ctx, actor, periodo)
	if err != nil {
		return nil, "", err
	}
	if !status.TodasCerradas {
		return nil, "", ErrMesasAbiertas
	}

	detailed, err := s.stats.GetDetailed(ctx, actor, periodo)
	if err != nil {
		return nil, "", err
	}
	winners, err := s.stats.GetWinners(ctx, actor, periodo)
	if err != nil {
		return nil, "", err
	}
	sedes, err := s.stats.GetPollingPlaces(ctx, actor, periodo)
	if err != nil {
		return nil, "", err
	}
	summary, err := s.stats.GetSummary(ctx, actor, periodo)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("⚠️ Error closing workbook: %v", err)
		}
	}()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F5597"}, Pattern: 1},
	})
	if err != nil {
		return nil, "", err
	}

	if err := s.writeRankingSheet(f, headerStyle, periodo, summary, detailed); err != nil {
		return nil, "", err
	}
	if err := s.writeWinnersSheet(f, headerStyle, winners); err != nil {
		return nil, "", err
	}
	if err := s.writeSedesSheet(f, headerStyle, sedes); err != nil {
		return nil, "", err
	}

	// excelize creates "Sheet1" by default; drop it once ours exist.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("resultados_votacion_%d.xlsx", periodo)
	log.Printf("✅ Results workbook generated: %s (%d bytes)", filename, buf.Len())

	return buf, filename, nil
}

func (s *ExportService) writeRankingSheet(f *excelize.File, headerStyle int, periodo int, summary *SummaryData, detailed *DetailedData) error {
	const sheet = "Ranking"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Resultados Votación %d", periodo))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Votos válidos: %d | Blancos: %d | Nulos: %d | Votantes: %d",
		summary.VotosNormal, summary.VotosBlanco, summary.VotosNulo, summary.Votantes))

	headers := []string{"#", "Código", "Proyecto", "Categoría", "Sector", "Votos", "% Total", "% Categoría"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, r := range detailed.Ranking {
		row := i + 5
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.IDProyecto)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Nombre)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.Categoria)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Sector)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Votos)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("%.1f%%", r.Porcentaje))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("%.1f%%", r.PorcentajeCategoria))
	}

	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "E", 18)
	return nil
}

func (s *ExportService) writeWinnersSheet(f *excelize.File, headerStyle int, winners *WinnersData) error {
	const sheet = "Ganadores"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Categoría", "Sector", "Código", "Proyecto", "Votos"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	if winners.Comunal != nil {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), winners.Comunal.Categoria)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Toda la comuna")
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), winners.Comunal.IDProyecto)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), winners.Comunal.Nombre)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), winners.Comunal.Votos)
		row++
	}

	for _, cat := range winners.Categorias {
		for _, sw := range cat.Sectores {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), cat.Categoria)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sw.Sector)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sw.Proyecto.IDProyecto)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sw.Proyecto.Nombre)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), sw.Proyecto.Votos)
			row++
		}
	}

	f.SetColWidth(sheet, "B", "B", 20)
	f.SetColWidth(sheet, "D", "D", 40)
	return nil
}

func (s *ExportService) writeSedesSheet(f *excelize.File, headerStyle int, sedes []SedeParticipation) error {
	const sheet = "Sedes"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Sede", "Mesas", "Votos válidos", "Blancos", "Nulos", "Votantes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, sd := range sedes {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sd.Sede)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sd.Mesas)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sd.VotosNormal)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), sd.VotosBlanco)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), sd.VotosNulo)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), sd.Votantes)
	}

	f.SetColWidth(sheet, "A", "A", 30)
	return nil
}
