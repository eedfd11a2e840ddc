package testutil

import (
	"io"

	"github.com/davitk/account-console/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 8)
}
