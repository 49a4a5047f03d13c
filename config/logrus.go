package config

import (
	"bytes"
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Log formatter options
const (
	json   = "json"
	logfmt = "logfmt"
	tty    = "tty"
)

// Config paths
const (
	PathLevel     = "loglevel"
	PathFormatter = "logformatter"
	PathIgnoreGin = "logignoregin"
)

func init() {
	// provide configuration
	RootCtx.PersistentFlags().UintP(PathLevel, "l", uint(logrus.InfoLevel), "log level (Panic: 0, Fatal: 1, Error: 2, Warning: 3, Info: 4, Debug: 5, Trace: 6)")
	Viper.BindPFlag(PathLevel, RootCtx.PersistentFlags().Lookup(PathLevel))

	RootCtx.PersistentFlags().String(PathFormatter, tty, "log format (tty, logfmt, json)")
	Viper.BindPFlag(PathFormatter, RootCtx.PersistentFlags().Lookup(PathFormatter))

	RootCtx.PersistentFlags().Bool(PathIgnoreGin, false, "hide gin's ouput (http server)")
	Viper.BindPFlag(PathIgnoreGin, RootCtx.PersistentFlags().Lookup(PathIgnoreGin))
}

func initializeLogrus() {
	// check logging level
	lvl := Viper.GetUint32(PathLevel)
	if uint32(logrus.TraceLevel) < lvl {
		InvalidConfiguration(PathLevel, [...]logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel})
	}
	// check logging format
	f := LogFormatter()

	logrus.SetFormatter(&redactingFormatter{f})
	logrus.SetLevel(logrus.Level(lvl))
}

// NewLogger returns a new logger instance as configured by this package's
// viper instance. Registered secrets never appear in its output.
func NewLogger() *logrus.Logger {
	l := logrus.New()
	// choose formatter
	l.SetFormatter(&redactingFormatter{LogFormatter()})

	l.SetLevel(logrus.Level(Viper.GetUint32(PathLevel)))
	return l
}

// Redacted replaces secrets in log output.
const Redacted = "***"

var (
	secrets  [][]byte
	secretsM sync.RWMutex
)

// Secret registers values that loggers created by this package must not
// print, e.g. access tokens.
func Secret(values ...string) {
	secretsM.Lock()
	defer secretsM.Unlock()
	for _, v := range values {
		if v != "" {
			secrets = append(secrets, []byte(v))
		}
	}
}

type redactingFormatter struct {
	logrus.Formatter
}

func (f *redactingFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b, err := f.Formatter.Format(e)
	if err != nil {
		return b, err
	}
	secretsM.RLock()
	defer secretsM.RUnlock()
	for _, s := range secrets {
		b = bytes.ReplaceAll(b, s, []byte(Redacted))
	}
	return b, nil
}

// LogFormatter returns the configured logrus formatter.
func LogFormatter() logrus.Formatter {
	switch Viper.GetString(PathFormatter) {
	case json:
		return &logrus.JSONFormatter{}
	case logfmt:
		return &logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		}
	case tty, "":
		return &logrus.TextFormatter{}
	default:
		InvalidConfiguration(PathFormatter, [...]string{json, logfmt, tty})
		return nil
	}
}

// GinLogrusLogger returns a gin middleware writing one log entry per request.
func GinLogrusLogger() gin.HandlerFunc {
	logger := NewLogger()

	if Viper.GetBool(PathIgnoreGin) {
		return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
			return ""
		})
	}

	return gin.LoggerWithFormatter(func(p gin.LogFormatterParams) string {
		fields := logger.WithFields(logrus.Fields{
			"status_code":  p.StatusCode,
			"latency_time": p.Latency,
			"client_ip":    p.ClientIP,
			"req_method":   p.Method,
			"req_uri":      p.Request.RequestURI,
		})

		if p.ErrorMessage != "" {
			fields.WithError(errors.New(p.ErrorMessage)).Error("GIN")
			return ""
		}

		fields.Info("GIN")

		return ""
	})
}
