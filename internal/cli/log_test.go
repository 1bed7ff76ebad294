package cli

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		debug bool // whether debug lines are written
		info  bool
	}{
		{"debug", LogDebug, true, true},
		{"info", LogInfo, false, true},
		{"warn", log.WarnLevel, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)

			l.Debug("sweep complete")
			if got := buf.Len() > 0; got != tt.debug {
				t.Errorf("debug written = %v, want %v", got, tt.debug)
			}
			buf.Reset()
			l.Info("integrated boxes")
			if got := buf.Len() > 0; got != tt.info {
				t.Errorf("info written = %v, want %v", got, tt.info)
			}
		})
	}
}

func TestLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("ready")
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("line %q should start with an HH:MM:SS.cc timestamp", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug line missing after SetLogLevel: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.done("Integrated 4 boxes", "cells", 3, "cached", false)

	for _, want := range []string{"Integrated 4 boxes (", "s)", "cells=3", "cached=false"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("progress.done() output %q lacks %q", buf.String(), want)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	custom := newLogger(io.Discard, LogInfo)
	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), custom), custom},
		{"fallback", context.Background(), log.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestRootAttachesLogger(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}

	sub, _, err := root.Find([]string{"cache", "path"})
	if err != nil {
		t.Fatal(err)
	}
	if got := loggerFromContext(sub.Context()); got != c.Logger {
		t.Error("subcommand context should carry the CLI logger")
	}
}
