package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/web/service"
)

type DashboardController struct {
	BaseController

	financeService service.FinanceService
}

func NewDashboardController(g *gin.RouterGroup) *DashboardController {
	a := &DashboardController{}
	a.initRouter(g)
	return a
}

func (a *DashboardController) initRouter(g *gin.RouterGroup) {
	g.GET("/dashboard", a.stats)
}

// stats returns the landing page counters and the latest transactions.
func (a *DashboardController) stats(c *gin.Context) {
	stats, err := a.financeService.Dashboard()
	if err != nil {
		jsonMsg(c, "dashboard", err)
		return
	}
	recent, err := a.financeService.RecentTransactions()
	if err != nil {
		jsonMsg(c, "dashboard", err)
		return
	}
	jsonObj(c, gin.H{"stats": stats, "recentTransactions": recent}, nil)
}
