package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
	"github.com/daftarhq/daftar/util/common"
	"github.com/daftarhq/daftar/web/entity"
)

var defaultValueMap = map[string]string{
	"webListen":   "",
	"webDomain":   "",
	"webPort":     "8080",
	"webCertFile": "",
	"webKeyFile":  "",
	"webBasePath": "/",

	// 7 days, in minutes
	"sessionMaxAge": "10080",
	"pageSize":      "30",

	"timeLocation":        "Local",
	"workdayCutoff":       "09:15",
	"attendanceCloseTime": "20:00",

	"twoFactorEnable": "false",
	"twoFactorToken":  "",

	"tgBotEnable":      "false",
	"tgBotToken":       "",
	"tgBotChatId":      "",
	"tgBotLoginNotify": "true",
}

type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.setString(key, strconv.FormatBool(value))
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) GetCertFile() (string, error) {
	return s.getString("webCertFile")
}

func (s *SettingService) GetKeyFile() (string, error) {
	return s.getString("webKeyFile")
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath, nil
}

// GetSessionMaxAge returns the session lifetime in minutes.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		location, _ = time.LoadLocation(defaultLocation)
	}
	return location, nil
}

// GetWorkdayCutoff returns the hour and minute after which a check-in
// counts as late.
func (s *SettingService) GetWorkdayCutoff() (hour, minute int, err error) {
	return s.getClock("workdayCutoff")
}

// GetAttendanceCloseTime returns the hour and minute at which missing
// attendance records are marked absent.
func (s *SettingService) GetAttendanceCloseTime() (hour, minute int, err error) {
	return s.getClock("attendanceCloseTime")
}

func (s *SettingService) getClock(key string) (hour, minute int, err error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, 0, err
	}
	t, err := time.Parse("15:04", str)
	if err != nil {
		return 0, 0, common.NewErrorf("setting %v is not a HH:MM clock value: %v", key, str)
	}
	return t.Hour(), t.Minute(), nil
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(value bool) error {
	return s.setBool("twoFactorEnable", value)
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(token string) error {
	return s.setString("twoFactorToken", token)
}

func (s *SettingService) GetTgbotEnabled() (bool, error) {
	return s.getBool("tgBotEnable")
}

func (s *SettingService) GetTgBotToken() (string, error) {
	return s.getString("tgBotToken")
}

func (s *SettingService) GetTgBotChatId() (string, error) {
	return s.getString("tgBotChatId")
}

func (s *SettingService) GetTgBotLoginNotify() (bool, error) {
	return s.getBool("tgBotLoginNotify")
}

// GetAllSetting merges stored settings over the defaults.
func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	allSetting := &entity.AllSetting{}

	assign := func(key, value string) error {
		switch key {
		case "webListen":
			allSetting.WebListen = value
		case "webDomain":
			allSetting.WebDomain = value
		case "webPort":
			n, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			allSetting.WebPort = n
		case "webCertFile":
			allSetting.WebCertFile = value
		case "webKeyFile":
			allSetting.WebKeyFile = value
		case "webBasePath":
			allSetting.WebBasePath = value
		case "sessionMaxAge":
			n, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			allSetting.SessionMaxAge = n
		case "pageSize":
			n, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			allSetting.PageSize = n
		case "timeLocation":
			allSetting.TimeLocation = value
		case "workdayCutoff":
			allSetting.WorkdayCutoff = value
		case "attendanceCloseTime":
			allSetting.AttendanceCloseTime = value
		case "twoFactorEnable":
			allSetting.TwoFactorEnable = value == "true"
		case "twoFactorToken":
			allSetting.TwoFactorToken = value
		case "tgBotEnable":
			allSetting.TgBotEnable = value == "true"
		case "tgBotToken":
			allSetting.TgBotToken = value
		case "tgBotChatId":
			allSetting.TgBotChatId = value
		case "tgBotLoginNotify":
			allSetting.TgBotLoginNotify = value == "true"
		}
		return nil
	}

	db := database.GetDB()
	settings := make([]*model.Setting, 0)
	if err := db.Model(model.Setting{}).Find(&settings).Error; err != nil {
		return nil, err
	}

	stored := map[string]bool{}
	for _, setting := range settings {
		if err := assign(setting.Key, setting.Value); err != nil {
			return nil, err
		}
		stored[setting.Key] = true
	}
	for key, value := range defaultValueMap {
		if stored[key] {
			continue
		}
		if err := assign(key, value); err != nil {
			return nil, err
		}
	}

	return allSetting, nil
}

// UpdateAllSetting validates and persists every provided setting.
func (s *SettingService) UpdateAllSetting(allSetting *entity.AllSetting) error {
	if err := allSetting.CheckValid(); err != nil {
		return err
	}

	pairs := map[string]string{
		"webListen":           allSetting.WebListen,
		"webDomain":           allSetting.WebDomain,
		"webPort":             strconv.Itoa(allSetting.WebPort),
		"webCertFile":         allSetting.WebCertFile,
		"webKeyFile":          allSetting.WebKeyFile,
		"webBasePath":         allSetting.WebBasePath,
		"sessionMaxAge":       strconv.Itoa(allSetting.SessionMaxAge),
		"pageSize":            strconv.Itoa(allSetting.PageSize),
		"timeLocation":        allSetting.TimeLocation,
		"workdayCutoff":       allSetting.WorkdayCutoff,
		"attendanceCloseTime": allSetting.AttendanceCloseTime,
		"twoFactorEnable":     strconv.FormatBool(allSetting.TwoFactorEnable),
		"twoFactorToken":      allSetting.TwoFactorToken,
		"tgBotEnable":         strconv.FormatBool(allSetting.TgBotEnable),
		"tgBotToken":          allSetting.TgBotToken,
		"tgBotChatId":         allSetting.TgBotChatId,
		"tgBotLoginNotify":    strconv.FormatBool(allSetting.TgBotLoginNotify),
	}

	var errs []error
	for key, value := range pairs {
		errs = append(errs, s.saveSetting(key, value))
	}
	return common.Combine(errs...)
}
