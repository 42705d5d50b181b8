// logger.go
package ish

import (
	"github.com/baditaflorin/go_ish/internal/adapters/logger"
	"github.com/baditaflorin/go_ish/internal/ports"
)

// defaultLogger returns the process-wide logger used when none is configured.
func defaultLogger() ports.Logger {
	return logger.Shared()
}
