package job

import (
	"os"

	"github.com/daftarhq/daftar/logger"
	"github.com/daftarhq/daftar/util/common"
)

// maxLogSize is the size past which the log file is truncated.
const maxLogSize = 10 * 1024 * 1024

// ClearLogsJob keeps the log file from growing without bound.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

func (j *ClearLogsJob) Run() {
	defer common.Recover("clear logs job")

	path := logger.LogFilePath()

	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("clear logs job:", err)
		}
		return
	}
	if info.Size() < maxLogSize {
		return
	}

	if err := os.Truncate(path, 0); err != nil {
		logger.Warning("clear logs job:", err)
		return
	}
	logger.Info("log file truncated")
}
