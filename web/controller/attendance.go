package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/web/service"
	"github.com/daftarhq/daftar/web/session"
)

// AttendanceForm selects the action of a POST: check_in or check_out.
type AttendanceForm struct {
	Action string `json:"action" form:"action"`
}

type AttendanceController struct {
	BaseController

	attendanceService service.AttendanceService
	settingService    service.SettingService
}

func NewAttendanceController(g *gin.RouterGroup) *AttendanceController {
	a := &AttendanceController{}
	a.initRouter(g)
	return a
}

func (a *AttendanceController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/attendance")
	g.Use(a.checkLogin)

	g.GET("", a.get)
	g.POST("", a.post)
}

// get returns today's record plus recent history for the caller. With
// ?date=YYYY-MM-DD and the view-all capability it returns the day view for
// every user instead.
func (a *AttendanceController) get(c *gin.Context) {
	claims := session.GetLoginClaims(c)

	if dateStr := c.Query("date"); dateStr != "" {
		if !claims.Role.Can(model.PermViewAllAttendance) {
			pureJsonMsg(c, http.StatusForbidden, false, "insufficient permissions")
			return
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			jsonMsg(c, "parse date", err)
			return
		}
		records, err := a.attendanceService.ListByDate(date)
		if err != nil {
			jsonMsg(c, "list attendance", err)
			return
		}
		summary, err := a.attendanceService.SummaryByDate(date)
		if err != nil {
			jsonMsg(c, "list attendance", err)
			return
		}
		jsonObj(c, gin.H{"records": records, "summary": summary}, nil)
		return
	}

	today, err := a.attendanceService.TodayRecord(claims.UserId)
	if err != nil {
		jsonMsg(c, "get attendance", err)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit, _ = a.settingService.GetPageSize()
	}
	history, err := a.attendanceService.History(claims.UserId, limit)
	if err != nil {
		jsonMsg(c, "get attendance", err)
		return
	}
	jsonObj(c, gin.H{"today": today, "history": history}, nil)
}

// post performs a check-in or check-out for the caller.
func (a *AttendanceController) post(c *gin.Context) {
	claims := session.GetLoginClaims(c)

	var form AttendanceForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid form data")
		return
	}

	var record *model.Attendance
	var err error
	switch form.Action {
	case "check_in", "check-in":
		record, err = a.attendanceService.CheckIn(claims.UserId)
	case "check_out", "check-out":
		record, err = a.attendanceService.CheckOut(claims.UserId)
	default:
		pureJsonMsg(c, http.StatusBadRequest, false, "action must be check_in or check_out")
		return
	}

	if errors.Is(err, service.ErrAlreadyCheckedIn) {
		pureJsonMsg(c, http.StatusBadRequest, false, err.Error())
		return
	}
	if errors.Is(err, service.ErrNoOpenSession) {
		pureJsonMsg(c, http.StatusNotFound, false, err.Error())
		return
	}
	if err != nil {
		jsonMsg(c, form.Action, err)
		return
	}
	jsonObj(c, record, nil)
}
