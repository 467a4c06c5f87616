package service

import (
	"testing"
)

func TestSettingDefaults(t *testing.T) {
	initTestDB(t)
	settingService := SettingService{}

	port, err := settingService.GetPort()
	if err != nil {
		t.Fatalf("get port: %v", err)
	}
	if port != 8080 {
		t.Errorf("expected default port 8080, got %d", port)
	}

	maxAge, err := settingService.GetSessionMaxAge()
	if err != nil {
		t.Fatalf("get session max age: %v", err)
	}
	if maxAge != 10080 {
		t.Errorf("expected default session max age 10080, got %d", maxAge)
	}
}

func TestSettingOverridesDefault(t *testing.T) {
	initTestDB(t)
	settingService := SettingService{}

	if err := settingService.setInt("webPort", 9090); err != nil {
		t.Fatalf("set port: %v", err)
	}
	port, err := settingService.GetPort()
	if err != nil {
		t.Fatalf("get port: %v", err)
	}
	if port != 9090 {
		t.Errorf("expected stored port 9090, got %d", port)
	}
}

func TestGetBasePathNormalization(t *testing.T) {
	initTestDB(t)
	settingService := SettingService{}

	tests := []struct {
		stored   string
		expected string
	}{
		{"/", "/"},
		{"panel", "/panel/"},
		{"/panel", "/panel/"},
		{"panel/", "/panel/"},
	}
	for _, tc := range tests {
		if err := settingService.setString("webBasePath", tc.stored); err != nil {
			t.Fatalf("set base path: %v", err)
		}
		got, err := settingService.GetBasePath()
		if err != nil {
			t.Fatalf("get base path: %v", err)
		}
		if got != tc.expected {
			t.Errorf("stored %q: expected %q, got %q", tc.stored, tc.expected, got)
		}
	}
}

func TestGetClockRejectsBadValue(t *testing.T) {
	initTestDB(t)
	settingService := SettingService{}

	if err := settingService.setString("workdayCutoff", "quarter past nine"); err != nil {
		t.Fatalf("set cutoff: %v", err)
	}
	if _, _, err := settingService.GetWorkdayCutoff(); err == nil {
		t.Error("expected an error for a non HH:MM value")
	}

	if err := settingService.setString("workdayCutoff", "09:15"); err != nil {
		t.Fatalf("set cutoff: %v", err)
	}
	hour, minute, err := settingService.GetWorkdayCutoff()
	if err != nil {
		t.Fatalf("get cutoff: %v", err)
	}
	if hour != 9 || minute != 15 {
		t.Errorf("expected 09:15, got %02d:%02d", hour, minute)
	}
}
