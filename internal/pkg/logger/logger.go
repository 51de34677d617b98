package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a console logger for development and a JSON logger for every
// other environment.
func New(environment string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if strings.EqualFold(strings.TrimSpace(environment), "development") {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}

// OrNop lets constructors accept a nil logger.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
