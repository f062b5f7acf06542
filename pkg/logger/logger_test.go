package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	SetLevel("debug")
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("expected global debug level, got %v", zerolog.GlobalLevel())
	}

	SetLevel("nonsense")
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("unknown level must fall back to info, got %v", zerolog.GlobalLevel())
	}
}
