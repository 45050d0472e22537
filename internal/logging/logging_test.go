package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"jwsched/internal/logging"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.Debug("decoded document", "bytes", 42)

	out := buf.String()
	for _, want := range []string{`"level":"debug"`, `"msg":"decoded document"`, `"bytes":42`, `"ts":`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %s: %s", want, out)
		}
	}
}

func TestNewConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.Info("suppressed")
	log.Warn("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line must be suppressed at warn level: %s", out)
	}
	if !strings.Contains(out, "WARN – emitted") {
		t.Fatalf("warn header missing: %s", out)
	}
}

func TestConsoleLoggerListsFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	log.With("publication", "MWB").Info("parsed publication", "weeks", 5)

	out := buf.String()
	if !strings.Contains(out, "INFO – parsed publication") {
		t.Fatalf("header missing: %s", out)
	}
	for _, want := range []string{"    - publication: MWB\n", "    - weeks: 5\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("field bullet missing %q: %s", want, out)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopDiscards(t *testing.T) {
	log := logging.Nop()
	log.Error("goes nowhere")
}
