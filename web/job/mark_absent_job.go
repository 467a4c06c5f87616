// Package job holds the scheduled background tasks of the panel. Each job
// satisfies cron.Job through its Run method; scheduling lives in the web
// server.
package job

import (
	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/util/common"
	"github.com/daftarhq/daftar/web/service"
)

// MarkAbsentJob closes the attendance day: every user without a record for
// today gets an absent one, then a summary goes to the Telegram chat when
// the bot is configured.
type MarkAbsentJob struct {
	attendanceService service.AttendanceService
	notifyService     service.NotifyService
}

func NewMarkAbsentJob() *MarkAbsentJob {
	return new(MarkAbsentJob)
}

func (j *MarkAbsentJob) Run() {
	defer common.Recover("mark absent job")

	today, err := j.attendanceService.Today()
	if err != nil {
		logger.Warning("mark absent job:", err)
		return
	}

	marked, err := j.attendanceService.MarkAbsentees(today)
	if err != nil {
		logger.Warning("mark absent job:", err)
		return
	}
	if marked > 0 {
		logger.Infof("attendance closed for %s, %d users marked absent", today.Format("2006-01-02"), marked)
	}

	summary, err := j.attendanceService.SummaryByDate(today)
	if err != nil {
		logger.Warning("mark absent job:", err)
		return
	}
	j.notifyService.NotifyAttendanceSummary(today, summary)
}
