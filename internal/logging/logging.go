// Package logging points the standard logger at stdout and, optionally, a
// rotating log file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"tubewise/config"
)

// Setup configures the std logger. The returned closer flushes the rotating
// file, if any.
func Setup(s config.LogSettings) io.Closer {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if s.File == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   s.File,
		MaxSize:    s.MaxSizeMB,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAgeDays,
		Compress:   s.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	log.Printf("[logging] writing to %s (max %dMB, %d backups)", s.File, s.MaxSizeMB, s.MaxBackups)
	return rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
