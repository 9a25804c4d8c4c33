package main

import (
	"os"

	"github.com/op/go-logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log = logging.MustGetLogger("seedzone")

var stderrLogFormat = logging.MustStringFormatter(
	`%{color:reset}%{color}%{time:15:04:05.000} [%{shortfunc}] [%{level}] %{message}`,
)

var fileLogFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} [%{shortfunc}] [%{level}] %{message}`,
)

// setupLogging sends log output to stderr and, if logFile is set, to a
// rotated log file. stdout is kept for the zone.
func setupLogging(verbose, debug bool, logFile string) {

	level := logging.WARNING
	if verbose {
		level = logging.INFO
	}
	if debug {
		level = logging.DEBUG
	}

	backends := []logging.Backend{
		logging.NewBackendFormatter(logging.NewLogBackend(os.Stderr, "", 0), stderrLogFormat),
	}
	if logFile != "" {
		w := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, //days
		}
		backends = append(backends, logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), fileLogFormat))
	}

	leveled := logging.SetBackend(backends...)
	leveled.SetLevel(level, "")
}
