package cmd

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

var logFile *lumberjack.Logger //nolint:gochecknoglobals

// setupLogging sets the level and the outputs of the default logger.
// Logs go to stderr so that render output on stdout stays parseable.
func setupLogging(g *GlobalOptions) error {
	switch {
	case g.DebugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(g.LogLevel)
		if err != nil {
			return err
		}

		log.SetLevel(l)
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var out io.Writer = os.Stderr

	if g.LogFile != "" {
		logFile = &lumberjack.Logger{
			Filename:   g.LogFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, logFile)
	}

	log.SetOutput(out)
	log.SetTimeFormat(time.TimeOnly)

	return nil
}
