// Package logging points the standard logger at stdout and, when configured,
// a rotating log file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup redirects the standard logger. With an empty logFile it only writes to
// stdout. The returned closer releases the log file.
func Setup(logFile string) io.Closer {
	log.SetFlags(log.LstdFlags)
	if logFile == "" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Clean(logFile),
		MaxSize:    15, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	log.Printf("Logging to stdout and %s", file.Filename)
	return file
}
