package service

import (
	"testing"
	"time"

	"github.com/daftarhq/daftar/database/model"
)

func TestNotifyDisabledIsNoop(t *testing.T) {
	initTestDB(t)

	notifyService := NotifyService{}
	bot, chatId, err := notifyService.bot()
	if err != nil {
		t.Fatalf("bot with tgbot disabled: %v", err)
	}
	if bot != nil || chatId != 0 {
		t.Errorf("expected no bot while disabled, got %v %d", bot, chatId)
	}

	// None of these may reach Telegram or panic while the bot is off.
	notifyService.send("ignored")
	notifyService.NotifyLogin("admin@daftar.local", "127.0.0.1", false)
	notifyService.NotifyAttendanceSummary(time.Now(), map[model.AttendanceStatus]int{
		model.Present: 3,
		model.Late:    1,
		model.Absent:  2,
	})
}

func TestNotifyBadChatIdRejected(t *testing.T) {
	initTestDB(t)

	settingService := SettingService{}
	if err := settingService.setBool("tgBotEnable", true); err != nil {
		t.Fatalf("set tgBotEnable: %v", err)
	}
	if err := settingService.setString("tgBotToken", "12345:token"); err != nil {
		t.Fatalf("set tgBotToken: %v", err)
	}
	if err := settingService.setString("tgBotChatId", "not-a-chat-id"); err != nil {
		t.Fatalf("set tgBotChatId: %v", err)
	}

	notifyService := NotifyService{}
	if _, _, err := notifyService.bot(); err == nil {
		t.Error("expected an error for a non-numeric chat id")
	}
}
