package logger

import (
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// ProvideLogger provides a JSON zap logger for the service.
func ProvideLogger() (*zap.SugaredLogger, error) {
	rawJSON := []byte(`{
	  "level": "info",
	  "encoding": "json",
	  "outputPaths": ["stdout"],
	  "errorOutputPaths": ["stderr"],
	  "encoderConfig": {
	    "messageKey": "message",
	    "levelKey": "level",
	    "timeKey": "ts",
	    "callerKey": "caller",
	    "stacktraceKey": "stacktrace",
	    "levelEncoder": "lowercase",
	    "timeEncoder": "iso8601",
	    "callerEncoder": "short"
	  }
	}`)

	var cfg zap.Config
	if err := json.Unmarshal(rawJSON, &cfg); err != nil {
		return nil, err
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}

// NewTestLogger returns a new logger and observed logs for testing.
func NewTestLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zap.DebugLevel)
	return zap.New(core).Sugar(), recorded
}

var Options = ProvideLogger
