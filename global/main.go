package global

import (
	"io"
	"os"

	"fundflow/conf"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

//Log is the shared application logger.
var Log = logrus.New()

//DateFormat is the calendar day key format used across the pipeline.
const DateFormat = "2006-01-02"

//TimeFormat is the full timestamp format used in persisted artifacts.
const TimeFormat = "2006-01-02 15:04:05"

func init() {
	switch conf.Args.LogLevel {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	case "panic":
		Log.SetLevel(logrus.PanicLevel)
	}

	Log.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: TimeFormat,
		FullTimestamp:   true,
		ForceFormatting: true,
	})
	if _, e := os.Stat(conf.Args.LogFile); e == nil {
		os.Remove(conf.Args.LogFile)
	}
	logFile, e := os.OpenFile(conf.Args.LogFile, os.O_CREATE|os.O_RDWR, 0666)
	if e != nil {
		Log.Warnf("failed to open log file, logging to stdout only: %+v", e)
		return
	}
	mw := io.MultiWriter(os.Stdout, logFile)
	Log.SetOutput(mw)
}
