package service

import (
	"errors"
	"testing"
	"time"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
)

func testUser(t *testing.T) *model.User {
	t.Helper()
	userService := UserService{}
	user, err := userService.GetFirstUser()
	if err != nil {
		t.Fatalf("get first user: %v", err)
	}
	return user
}

func TestCheckInTwiceSameDay(t *testing.T) {
	initTestDB(t)
	attendanceService := AttendanceService{}
	user := testUser(t)

	record, err := attendanceService.CheckIn(user.Id)
	if err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if record.CheckIn.IsZero() {
		t.Error("check-in time not set")
	}

	if _, err := attendanceService.CheckIn(user.Id); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	initTestDB(t)
	attendanceService := AttendanceService{}
	user := testUser(t)

	if _, err := attendanceService.CheckOut(user.Id); !errors.Is(err, ErrNoOpenSession) {
		t.Errorf("expected ErrNoOpenSession, got %v", err)
	}
}

func TestCheckOutOverwritesPrevious(t *testing.T) {
	initTestDB(t)
	attendanceService := AttendanceService{}
	user := testUser(t)

	if _, err := attendanceService.CheckIn(user.Id); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	first, err := attendanceService.CheckOut(user.Id)
	if err != nil {
		t.Fatalf("first check-out: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	second, err := attendanceService.CheckOut(user.Id)
	if err != nil {
		t.Fatalf("second check-out: %v", err)
	}
	if !second.CheckOut.After(*first.CheckOut) {
		t.Error("second check-out did not overwrite the first")
	}
}

func TestCheckInClassification(t *testing.T) {
	initTestDB(t)
	attendanceService := AttendanceService{}
	settingService := SettingService{}
	user := testUser(t)

	tests := []struct {
		name     string
		cutoff   string
		expected model.AttendanceStatus
	}{
		{"before cutoff is present", "23:59", model.Present},
		{"after cutoff is late", "00:00", model.Late},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			initTestDB(t)
			if err := settingService.setString("workdayCutoff", tc.cutoff); err != nil {
				t.Fatalf("set cutoff: %v", err)
			}
			record, err := attendanceService.CheckIn(user.Id)
			if err != nil {
				t.Fatalf("check-in: %v", err)
			}
			if record.Status != tc.expected {
				t.Errorf("expected status %s, got %s", tc.expected, record.Status)
			}
		})
	}
}

func TestTodayRecordNilWhenAbsent(t *testing.T) {
	initTestDB(t)
	attendanceService := AttendanceService{}
	user := testUser(t)

	record, err := attendanceService.TodayRecord(user.Id)
	if err != nil {
		t.Fatalf("today record: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil record, got %+v", record)
	}
}

func TestMarkAbsenteesIsIdempotent(t *testing.T) {
	initTestDB(t)
	attendanceService := AttendanceService{}
	userService := UserService{}

	if _, _, err := userService.CreateUser("Omar", "omar@test.local", "secret123", model.RoleEngineer); err != nil {
		t.Fatalf("create user: %v", err)
	}

	admin := testUser(t)
	if _, err := attendanceService.CheckIn(admin.Id); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	today, err := attendanceService.Today()
	if err != nil {
		t.Fatalf("today: %v", err)
	}

	marked, err := attendanceService.MarkAbsentees(today)
	if err != nil {
		t.Fatalf("mark absentees: %v", err)
	}
	if marked != 1 {
		t.Errorf("expected 1 user marked absent, got %d", marked)
	}

	marked, err = attendanceService.MarkAbsentees(today)
	if err != nil {
		t.Fatalf("second mark absentees: %v", err)
	}
	if marked != 0 {
		t.Errorf("expected 0 on rerun, got %d", marked)
	}

	summary, err := attendanceService.SummaryByDate(today)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary[model.Absent] != 1 {
		t.Errorf("expected 1 absent, got %d", summary[model.Absent])
	}
	if summary[model.Present]+summary[model.Late] != 1 {
		t.Errorf("expected 1 checked in, got %+v", summary)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	initTestDB(t)
	attendanceService := AttendanceService{}
	user := testUser(t)

	today, err := attendanceService.Today()
	if err != nil {
		t.Fatalf("today: %v", err)
	}

	// backfill a few days directly through the service-owned table
	for i := 3; i >= 1; i-- {
		record := &model.Attendance{
			UserId:  user.Id,
			Date:    today.AddDate(0, 0, -i),
			CheckIn: today.AddDate(0, 0, -i).Add(9 * time.Hour),
			Status:  model.Present,
		}
		if err := database.GetDB().Create(record).Error; err != nil {
			t.Fatalf("backfill: %v", err)
		}
	}

	history, err := attendanceService.History(user.Id, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
	if !history[0].Date.After(history[1].Date) {
		t.Error("history not ordered newest first")
	}
}
