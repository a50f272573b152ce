package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"ptjobs/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tcases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tcases {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := logging.Validate("warn"); err != nil {
		t.Fatalf("warn: %v", err)
	}
	if err := logging.Validate("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetup_JSONWithPackageField(t *testing.T) {
	var buf bytes.Buffer
	if err := logging.Setup(logging.Options{Level: "info", Format: "json", Output: &buf}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { _ = logging.Setup(logging.Options{Level: "off"}) })

	log := logging.New("session")
	log.Debug().Msg("hidden")
	log.Info().Str("role", "candidate").Msg("restored")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected exactly one JSON line, got %q: %v", buf.String(), err)
	}
	if entry[logging.PACKAGE] != "session" || entry["role"] != "candidate" || entry["message"] != "restored" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if logging.PACKAGE != "pkg" {
		t.Fatalf("package field = %q, want pkg", logging.PACKAGE)
	}
}

func TestSetup_RejectsUnknownFormat(t *testing.T) {
	if err := logging.Setup(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
