package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Procyon/internal/controller"
	"github.com/lshigami/Procyon/internal/service"
)

type StatsController struct {
	statsService service.StatsService
}

func NewStatsController(statsService service.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// RecentExams godoc
// @Summary Recently scheduled exams
// @Tags public
// @Produce json
// @Success 200 {array} dto.RecentExamDTO
// @Router /public/recent-exams [get]
func (ctrl *StatsController) RecentExams(c *gin.Context) {
	resp, err := ctrl.statsService.RecentExams()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopPerformers godoc
// @Summary Leaderboard of top performers
// @Description Students ranked by average percentage over completed attempts.
// @Tags public
// @Produce json
// @Success 200 {array} dto.TopPerformerDTO
// @Router /public/top-performers [get]
func (ctrl *StatsController) TopPerformers(c *gin.Context) {
	resp, err := ctrl.statsService.TopPerformers()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PlatformStats godoc
// @Summary Aggregate platform statistics
// @Tags public
// @Produce json
// @Success 200 {object} dto.PlatformStatsDTO
// @Router /public/stats [get]
func (ctrl *StatsController) PlatformStats(c *gin.Context) {
	resp, err := ctrl.statsService.PlatformStats()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
