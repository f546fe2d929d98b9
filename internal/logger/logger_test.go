package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewProvidesInfoLogger(t *testing.T) {
	l := New()
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Core().Enabled(zap.InfoLevel) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Core().Enabled(zap.DebugLevel) {
		t.Errorf("did not expect debug level to be enabled")
	}
}
