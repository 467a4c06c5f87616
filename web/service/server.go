package service

import (
	"context"
	"time"

	"github.com/daftarhq/daftar/config"
	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/atomic"
)

// Request counters, incremented by the counting middleware and surfaced in
// the status payload.
var (
	requestCount = atomic.NewInt64(0)
	errorCount   = atomic.NewInt64(0)
)

func CountRequest(isError bool) {
	requestCount.Inc()
	if isError {
		errorCount.Inc()
	}
}

// Status is the health/debug payload of the panel.
type Status struct {
	Version string  `json:"version"`
	Cpu     float64 `json:"cpu"`
	Mem     struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	Uptime   uint64 `json:"uptime"`
	Db       string `json:"db"`
	Requests int64  `json:"requests"`
	Errors   int64  `json:"errors"`
}

type ServerService struct{}

// GetStatus collects system usage and database reachability. Individual
// probe failures degrade to zero values rather than failing the endpoint.
func (s *ServerService) GetStatus() *Status {
	status := &Status{
		Version:  config.GetVersion(),
		Requests: requestCount.Load(),
		Errors:   errorCount.Load(),
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	diskInfo, err := disk.Usage("/")
	if err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	uptime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = uptime
	}

	status.Db = "connected"
	if db := database.GetDB(); db == nil {
		status.Db = "unavailable"
	} else if sqlDB, err := db.DB(); err != nil {
		status.Db = "unavailable"
	} else if err := pingWithTimeout(sqlDB.Ping); err != nil {
		status.Db = "failed"
	}

	return status
}

func pingWithTimeout(ping func() error) error {
	done := make(chan error, 1)
	go func() { done <- ping() }()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		return context.DeadlineExceeded
	}
}
