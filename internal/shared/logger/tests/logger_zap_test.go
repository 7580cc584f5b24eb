package tests

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/IvanChernomyrdin/go-yandex-notekeeper/internal/shared/logger"
)

func TestNew_CreatesLogFileAndWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "notekeeper.log")

	l := logger.New(logPath, "info")
	l.Info("test message")
	// закрываем буферы zap
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if !regexp.MustCompile(`\btest message\b`).MatchString(s) {
		t.Fatalf("expected log to contain message, got: %q", s)
	}

	// проверяем формат времени: "HH:MM:SS DD.MM.YYYY"
	timeRe := regexp.MustCompile(`\b\d{2}:\d{2}:\d{2} \d{2}\.\d{2}\.\d{4}\b`)
	if !timeRe.MatchString(s) {
		t.Fatalf("expected custom time format (HH:MM:SS DD.MM.YYYY), got: %q", s)
	}
}

func TestLogger_LogRequest_WritesStructuredFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "http.log")

	l := logger.New(logPath, "info")
	l.LogRequest("POST", "/session/login", 400, 20, 158.5463)
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	mustContain := []string{
		"HTTP request",
		"method", "POST",
		"uri", "/session/login",
		"status", "400",
		"response_size", "20",
		"duration_ms",
	}
	for _, sub := range mustContain {
		if !regexp.MustCompile(regexp.QuoteMeta(sub)).MatchString(s) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
}

func TestLogger_LogOperation_LevelDependsOnError(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ops.log")

	// на уровне info успешные операции (debug) не пишутся
	l := logger.New(logPath, "info")
	l.LogOperation("set", "notes-a@b.com", nil)
	l.LogOperation("set", "notes-c@d.com", errors.New("disk is gone"))
	_ = l.Sync()

	b, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(b)

	if regexp.MustCompile(regexp.QuoteMeta("notes-a@b.com")).MatchString(s) {
		t.Fatalf("debug entry must be filtered at info level, got: %q", s)
	}
	for _, sub := range []string{"storage operation failed", "notes-c@d.com", "disk is gone"} {
		if !regexp.MustCompile(regexp.QuoteMeta(sub)).MatchString(s) {
			t.Fatalf("expected log to contain %q, got: %q", sub, s)
		}
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := logger.Nop()
	l.LogRequest("GET", "/notes", 200, 2, 1)
	l.LogOperation("get", "user", nil)
}
