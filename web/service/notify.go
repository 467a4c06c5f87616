package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/logger"
)

// NotifyService pushes operational notices to a Telegram chat. All methods
// are no-ops unless the bot is enabled and configured in settings.
type NotifyService struct {
	settingService SettingService
}

func (s *NotifyService) bot() (*telego.Bot, int64, error) {
	enable, err := s.settingService.GetTgbotEnabled()
	if err != nil || !enable {
		return nil, 0, err
	}
	token, err := s.settingService.GetTgBotToken()
	if err != nil || token == "" {
		return nil, 0, err
	}
	chatIdStr, err := s.settingService.GetTgBotChatId()
	if err != nil || chatIdStr == "" {
		return nil, 0, err
	}
	chatId, err := strconv.ParseInt(chatIdStr, 10, 64)
	if err != nil {
		return nil, 0, err
	}
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, 0, err
	}
	return bot, chatId, nil
}

func (s *NotifyService) send(msg string) {
	bot, chatId, err := s.bot()
	if err != nil {
		logger.Warning("telegram notify:", err)
		return
	}
	if bot == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: tu.ID(chatId),
		Text:   msg,
	})
	if err != nil {
		logger.Warning("telegram notify:", err)
	}
}

// NotifyLogin reports a successful or failed login attempt.
func (s *NotifyService) NotifyLogin(email string, remoteIp string, ok bool) {
	loginNotify, err := s.settingService.GetTgBotLoginNotify()
	if err != nil || !loginNotify {
		return
	}
	status := "successful"
	if !ok {
		status = "FAILED"
	}
	s.send(fmt.Sprintf("Login %s\nUser: %s\nIP: %s\nTime: %s",
		status, email, remoteIp, time.Now().Format("2006-01-02 15:04:05")))
}

// NotifyAttendanceSummary reports the end-of-day attendance totals.
func (s *NotifyService) NotifyAttendanceSummary(date time.Time, summary map[model.AttendanceStatus]int) {
	s.send(fmt.Sprintf("Attendance %s\nPresent: %d\nLate: %d\nAbsent: %d",
		date.Format("2006-01-02"),
		summary[model.Present],
		summary[model.Late],
		summary[model.Absent]))
}
