// Package entity defines shared data structures for the web layer.
package entity

import (
	"crypto/tls"
	"math"
	"net"
	"strings"
	"time"

	"github.com/daftarhq/daftar/util/common"
)

// Msg is the standard API response envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting carries every runtime setting of the panel for the settings API.
type AllSetting struct {
	WebListen   string `json:"webListen" form:"webListen"`
	WebDomain   string `json:"webDomain" form:"webDomain"`
	WebPort     int    `json:"webPort" form:"webPort"`
	WebCertFile string `json:"webCertFile" form:"webCertFile"`
	WebKeyFile  string `json:"webKeyFile" form:"webKeyFile"`
	WebBasePath string `json:"webBasePath" form:"webBasePath"`

	SessionMaxAge int `json:"sessionMaxAge" form:"sessionMaxAge"` // minutes
	PageSize      int `json:"pageSize" form:"pageSize"`

	TimeLocation        string `json:"timeLocation" form:"timeLocation"`
	WorkdayCutoff       string `json:"workdayCutoff" form:"workdayCutoff"`             // HH:MM, check-ins after it are late
	AttendanceCloseTime string `json:"attendanceCloseTime" form:"attendanceCloseTime"` // HH:MM, absentees marked here

	TwoFactorEnable bool   `json:"twoFactorEnable" form:"twoFactorEnable"`
	TwoFactorToken  string `json:"twoFactorToken" form:"twoFactorToken"`

	TgBotEnable      bool   `json:"tgBotEnable" form:"tgBotEnable"`
	TgBotToken       string `json:"tgBotToken" form:"tgBotToken"`
	TgBotChatId      string `json:"tgBotChatId" form:"tgBotChatId"`
	TgBotLoginNotify bool   `json:"tgBotLoginNotify" form:"tgBotLoginNotify"`
}

// CheckValid validates the settings before they are persisted.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return common.NewError("web listen is not valid ip:", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > math.MaxUint16 {
		return common.NewError("web port is not a valid port:", s.WebPort)
	}

	if s.WebCertFile != "" || s.WebKeyFile != "" {
		_, err := tls.LoadX509KeyPair(s.WebCertFile, s.WebKeyFile)
		if err != nil {
			return common.NewErrorf("cert file <%v> or key file <%v> invalid: %v", s.WebCertFile, s.WebKeyFile, err)
		}
	}

	if s.SessionMaxAge <= 0 {
		return common.NewError("session max age must be positive:", s.SessionMaxAge)
	}

	if !strings.HasPrefix(s.WebBasePath, "/") {
		s.WebBasePath = "/" + s.WebBasePath
	}
	if !strings.HasSuffix(s.WebBasePath, "/") {
		s.WebBasePath += "/"
	}

	if _, err := time.LoadLocation(s.TimeLocation); err != nil {
		return common.NewError("time location not exist:", s.TimeLocation)
	}

	for _, clock := range []string{s.WorkdayCutoff, s.AttendanceCloseTime} {
		if _, err := time.Parse("15:04", clock); err != nil {
			return common.NewError("not a valid HH:MM clock value:", clock)
		}
	}

	return nil
}
