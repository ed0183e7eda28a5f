// Package logging provides the structured audit sink used by the hiring core.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Audit records user actions and errors as structured log entries.
type Audit struct {
	log *zap.SugaredLogger
}

// New builds an Audit logger. JSON output is meant for machine consumption;
// otherwise a console encoder writes to stdout.
func New(jsonOutput bool, level string) (*Audit, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var zapLogger *zap.Logger
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err = config.Build()
		if err != nil {
			return nil, err
		}
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapLogger = zap.New(
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(encoderConfig),
				zapcore.AddSync(os.Stdout),
				lvl,
			),
		)
	}

	return &Audit{log: zapLogger.Sugar()}, nil
}

// NewFromZap wraps an existing zap logger.
func NewFromZap(l *zap.Logger) *Audit {
	return &Audit{log: l.Sugar()}
}

// Nop returns an Audit that discards everything.
func Nop() *Audit {
	return &Audit{log: zap.NewNop().Sugar()}
}

// LogAction records an action performed by actor.
func (a *Audit) LogAction(actor, action, details string) {
	a.log.Infow(action,
		"actor", actor,
		"action", action,
		"details", details,
	)
}

// LogError records a failure together with its cause.
func (a *Audit) LogError(message string, err error) {
	a.log.Errorw(message, "error", err)
}

// Info records an informational message with optional key/value pairs.
func (a *Audit) Info(message string, keysAndValues ...any) {
	a.log.Infow(message, keysAndValues...)
}

// Sugar exposes the underlying logger for components that log requests.
func (a *Audit) Sugar() *zap.SugaredLogger {
	return a.log
}

// Sync flushes buffered entries.
func (a *Audit) Sync() error {
	return a.log.Sync()
}
