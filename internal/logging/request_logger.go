package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger is a chi middleware that logs every request through l once the
// response has been written. 5xx responses log at error, 4xx at warn. Handlers
// further down get l back with FromContext.
func (l *Logger) RequestLogger() func(next http.Handler) http.Handler {
	logRequests := middleware.RequestLogger(&requestLogFormatter{logger: l})
	return func(next http.Handler) http.Handler {
		return logRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), l)))
		}))
	}
}

type requestLogFormatter struct {
	logger *Logger
}

func (f *requestLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &requestLogEntry{
		logger: f.logger,
		fields: Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote":     r.RemoteAddr,
			"request_id": middleware.GetReqID(r.Context()),
		},
	}
}

type requestLogEntry struct {
	logger *Logger
	fields Fields
}

func (e *requestLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	fields := Fields{
		"status":      status,
		"bytes":       bytes,
		"duration_ms": elapsed.Milliseconds(),
	}

	level := logrus.InfoLevel
	if status >= 500 {
		level = logrus.ErrorLevel
	} else if status >= 400 {
		level = logrus.WarnLevel
	}
	e.logger.Log(level, "HTTP Request", e.fields, fields)
}

func (e *requestLogEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error("panic while serving request", e.fields, Fields{
		"panic": fmt.Sprintf("%v", v),
		"stack": string(stack),
	})
}
