package service

import (
	"errors"
	"time"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNoOpenSession    = errors.New("no check-in record found for today")
)

const defaultHistoryLimit = 30

// AttendanceService owns the per-user per-day attendance ledger. The
// (user, date) pair is unique at the storage layer; concurrent check-ins for
// the same user race on that index and exactly one insert wins, so no
// application-level locking is involved.
type AttendanceService struct {
	settingService SettingService
}

// Today returns midnight of the current day in the configured time location.
func (s *AttendanceService) Today() (time.Time, error) {
	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
}

// classify decides present vs late from the check-in moment and the workday
// cutoff setting.
func (s *AttendanceService) classify(checkIn time.Time) model.AttendanceStatus {
	hour, minute, err := s.settingService.GetWorkdayCutoff()
	if err != nil {
		logger.Warning("get workday cutoff err:", err)
		return model.Present
	}
	cutoff := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), hour, minute, 0, 0, checkIn.Location())
	if checkIn.After(cutoff) {
		return model.Late
	}
	return model.Present
}

// CheckIn opens today's attendance record for the user. A second check-in
// the same day fails with ErrAlreadyCheckedIn, including when two requests
// race: the unique index rejects the losing insert.
func (s *AttendanceService) CheckIn(userId int) (*model.Attendance, error) {
	today, err := s.Today()
	if err != nil {
		return nil, err
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(model.Attendance{}).
		Where("user_id = ? AND date = ?", userId, today).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyCheckedIn
	}

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return nil, err
	}
	now := time.Now().In(loc)

	record := &model.Attendance{
		UserId:  userId,
		Date:    today,
		CheckIn: now,
		Status:  s.classify(now),
	}
	if err := db.Create(record).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return record, nil
}

// CheckOut closes today's record. A repeated check-out overwrites the
// previous timestamp; that matches the historical behavior of the panel and
// is deliberate.
func (s *AttendanceService) CheckOut(userId int) (*model.Attendance, error) {
	today, err := s.Today()
	if err != nil {
		return nil, err
	}

	db := database.GetDB()

	record := &model.Attendance{}
	err = db.Where("user_id = ? AND date = ?", userId, today).First(record).Error
	if database.IsNotFound(err) {
		return nil, ErrNoOpenSession
	} else if err != nil {
		return nil, err
	}

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return nil, err
	}
	now := time.Now().In(loc)
	record.CheckOut = &now

	if err := db.Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// TodayRecord returns today's record for the user, or nil when there is
// none yet.
func (s *AttendanceService) TodayRecord(userId int) (*model.Attendance, error) {
	today, err := s.Today()
	if err != nil {
		return nil, err
	}

	db := database.GetDB()
	record := &model.Attendance{}
	err = db.Where("user_id = ? AND date = ?", userId, today).First(record).Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return record, nil
}

// History returns the most recent records for the user, newest day first.
func (s *AttendanceService) History(userId int, limit int) ([]model.Attendance, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	db := database.GetDB()
	var records []model.Attendance
	err := db.Where("user_id = ?", userId).
		Order("date desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// ListByDate returns every user's record for a day, earliest check-in
// first. Used by the HR day view.
func (s *AttendanceService) ListByDate(date time.Time) ([]model.Attendance, error) {
	db := database.GetDB()
	var records []model.Attendance
	err := db.Preload("User").
		Where("date = ?", date).
		Order("check_in asc").
		Find(&records).Error
	return records, err
}

// MarkAbsentees writes an absent record for every user without one on the
// given date. Creations go through the same unique index as check-ins, so
// running the job twice is harmless.
func (s *AttendanceService) MarkAbsentees(date time.Time) (int, error) {
	db := database.GetDB()

	var users []model.User
	if err := db.Find(&users).Error; err != nil {
		return 0, err
	}

	marked := 0
	for _, user := range users {
		var count int64
		if err := db.Model(model.Attendance{}).
			Where("user_id = ? AND date = ?", user.Id, date).
			Count(&count).Error; err != nil {
			return marked, err
		}
		if count > 0 {
			continue
		}
		record := &model.Attendance{
			UserId: user.Id,
			Date:   date,
			Status: model.Absent,
		}
		if err := db.Create(record).Error; err != nil {
			if database.IsDuplicate(err) {
				continue
			}
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// SummaryByDate counts records per status for a day.
func (s *AttendanceService) SummaryByDate(date time.Time) (map[model.AttendanceStatus]int, error) {
	records, err := s.ListByDate(date)
	if err != nil {
		return nil, err
	}
	summary := make(map[model.AttendanceStatus]int)
	for _, record := range records {
		summary[record.Status]++
	}
	return summary, nil
}
