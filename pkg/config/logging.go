package config

import (
	"io"
	"os"
	"strings"

	zlogsentry "github.com/archdx/zerolog-sentry"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	HeaderRequestId     = "X-Request-Id"
	RequestIdLoggingKey = "request_id"
)

// SkipLogging keeps health checks and scrapes out of the request log.
func SkipLogging(c echo.Context) bool {
	p := strings.TrimSuffix(c.Request().URL.Path, "/")
	return p == "/ping" || p == "/metrics"
}

// ConfigureLogging sets up the global logger. When a sentry DSN is configured
// error level events are forwarded to sentry as well; the returned closer
// flushes them and must be called on shutdown.
func ConfigureLogging() io.Closer {
	conf := Get()
	level, err := zerolog.ParseLevel(conf.Logging.Level)
	if err != nil {
		log.Error().Err(err).Msg("")
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if conf.Logging.Console {
		out = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !conf.Logging.Color}
	}

	var closer io.Closer = nopCloser{}
	if conf.Sentry.Dsn != "" {
		sentryWriter, err := newSentryWriter(conf.Sentry)
		if err != nil {
			log.Error().Err(err).Msg("ERROR setting up sentry")
		} else {
			out = zerolog.MultiLevelWriter(out, sentryWriter)
			closer = sentryWriter
		}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(level)
	zerolog.SetGlobalLevel(level)
	zerolog.DefaultContextLogger = &log.Logger
	return closer
}

func newSentryWriter(conf Sentry) (*zlogsentry.Writer, error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         conf.Dsn,
		Environment: conf.Environment,
	})
	if err != nil {
		return nil, err
	}
	return zlogsentry.NewWithHub(sentry.CurrentHub(),
		zlogsentry.WithLevels(zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel),
	)
}

// DBLevel is the level sql statements are logged at.
func DBLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(Get().Logging.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
