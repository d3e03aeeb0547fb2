package controllers

import (
	"residence/response"
	"residence/services"
	"residence/services/logger"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboard *services.DashboardService
	logger    logger.Logger
}

func NewDashboardController(dashboard *services.DashboardService, l logger.Logger) *DashboardController {
	if l == nil {
		l = logger.Nop()
	}
	return &DashboardController{dashboard: dashboard, logger: l}
}

func (dc *DashboardController) GetDashboard(c *gin.Context) {
	summary, err := dc.dashboard.Summary(c.Request.Context())
	if err != nil {
		dc.logger.Error("dashboard summary: %v", err)
		response.FromError(c, err)
		return
	}
	response.Success(c, summary)
}
