package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("warn") {
		t.Error("warn should be valid")
	}
	if ValidLevel("trace") {
		t.Error("trace should not be valid")
	}
}

func TestNewJSONLogger_FiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, "warn")

	logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info event should be filtered at warn level, got %q", buf.String())
	}

	logger.Warn().Str("component", "chain").Msg("shown")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["message"] != "shown" {
		t.Errorf("message = %v, want shown", entry["message"])
	}
	if entry["component"] != "chain" {
		t.Errorf("component = %v, want chain", entry["component"])
	}
}
