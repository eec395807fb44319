// File: /controllers/report_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"milestone-api/logger"
	"milestone-api/services"
)

type ReportController struct {
	aggregationService *services.AggregationService
	log                *logger.Logger
}

func NewReportController(aggregationService *services.AggregationService, log *logger.Logger) *ReportController {
	return &ReportController{
		aggregationService: aggregationService,
		log:                log.WithComponent(logger.ComponentReports),
	}
}

// GetHistory returns the caller's mileage and trip records as one newest-first
// list. Optional query filters: type (Mileage or Trip) and vehicleNo.
func (rc *ReportController) GetHistory(c *gin.Context) {
	filter := services.HistoryFilter{
		Type:      c.Query("type"),
		VehicleNo: c.Query("vehicleNo"),
	}

	history, err := rc.aggregationService.BuildHistory(c.Request.Context(), c.GetString("user_id"), filter)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

func (rc *ReportController) GetSummary(c *gin.Context) {
	period := c.DefaultQuery("period", "monthly")

	summary, err := rc.aggregationService.Summarize(c.Request.Context(), c.GetString("user_id"), period)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
