package editor

import (
	"os"
	"strconv"
)

const BatchEnv = "ANTIGRAVITY_BATCH"

// HostProcess tells whether the current process is the interactive host.
type HostProcess interface {
	IsMainProcess() bool
}

// EnvHost is the CLI's host: it is the main process unless batch mode is
// set in config or through ANTIGRAVITY_BATCH.
type EnvHost struct {
	Batch  bool
	Getenv func(string) string
}

func (h EnvHost) IsMainProcess() bool {
	if h.Batch {
		return false
	}
	getenv := h.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	batch, err := strconv.ParseBool(getenv(BatchEnv))
	return err != nil || !batch
}
