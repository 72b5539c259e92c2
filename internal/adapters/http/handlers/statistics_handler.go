package handlers

import (
	"errors"

	"muni-votaciones/internal/core/services"
	"muni-votaciones/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatisticsHandler handles the statistics and export endpoints
type StatisticsHandler struct {
	statsService  *services.StatisticsService
	exportService *services.ExportService
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statsService *services.StatisticsService, exportService *services.ExportService) *StatisticsHandler {
	return &StatisticsHandler{
		statsService:  statsService,
		exportService: exportService,
	}
}

// periodoQuery extracts and validates the periodo query parameter
func periodoQuery(c *fiber.Ctx) (int, bool) {
	periodo := c.QueryInt("periodo")
	return periodo, periodo >= 2000
}

// Summary handles the top-level statistics
// @Summary Statistics summary
// @Description Totals, votantes and per-category leaders over closed mesas
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /statistics [get]
func (h *StatisticsHandler) Summary(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	periodo, ok := periodoQuery(c)
	if !ok {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	data, err := h.statsService.GetSummary(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}
	return response.Success(c, "Statistics retrieved successfully", data)
}

// Detailed handles the full ranking
// @Summary Detailed ranking
// @Description Full per-project ranking with percentages
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /statistics/detailed [get]
func (h *StatisticsHandler) Detailed(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	periodo, ok := periodoQuery(c)
	if !ok {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	data, err := h.statsService.GetDetailed(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute ranking")
	}
	return response.Success(c, "Ranking retrieved successfully", data)
}

// Winners handles the winners report
// @Summary Winners
// @Description Overall communal winner plus per-sector winners of the other categories
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /statistics/winners [get]
func (h *StatisticsHandler) Winners(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	periodo, ok := periodoQuery(c)
	if !ok {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	data, err := h.statsService.GetWinners(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute winners")
	}
	return response.Success(c, "Winners retrieved successfully", data)
}

// PollingPlaces handles the per-sede participation breakdown
// @Summary Participation by sede
// @Description Votes and voters grouped by sede over closed mesas
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /statistics/polling-places [get]
func (h *StatisticsHandler) PollingPlaces(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	periodo, ok := periodoQuery(c)
	if !ok {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	data, err := h.statsService.GetPollingPlaces(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute participation")
	}
	return response.Success(c, "Participation retrieved successfully", data)
}

// MesaStatus handles the open/closed mesa summary
// @Summary Mesa status
// @Description Open/closed split of the mesas visible to the caller
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {object} response.Response
// @Router /statistics/mesa-status [get]
func (h *StatisticsHandler) MesaStatus(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	periodo, ok := periodoQuery(c)
	if !ok {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	data, err := h.statsService.GetMesaStatus(c.Context(), actor, periodo)
	if err != nil {
		return response.InternalServerError(c, "Failed to compute mesa status")
	}
	return response.Success(c, "Mesa status retrieved successfully", data)
}

// Export handles the Excel results download
// @Summary Export results workbook
// @Description Download the .xlsx results file; only available once every mesa is closed
// @Tags Statistics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param periodo query int true "Voting year"
// @Success 200 {file} binary
// @Failure 409 {object} response.Response
// @Router /statistics/export [get]
func (h *StatisticsHandler) Export(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	periodo, ok := periodoQuery(c)
	if !ok {
		return response.BadRequest(c, "Valid periodo query parameter is required")
	}

	buf, filename, err := h.exportService.ResultsWorkbook(c.Context(), actor, periodo)
	if err != nil {
		if errors.Is(err, services.ErrMesasAbiertas) {
			return response.Conflict(c, "Cannot export while mesas remain open")
		}
		return response.InternalServerError(c, "Failed to generate workbook")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
