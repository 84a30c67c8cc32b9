package main

import (
	"testing"
)

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"config", "prefs", "rows", "backend", "poll", "debug"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("flag --%s missing", name)
		}
	}
	if err := cmd.Flags().Parse([]string{"-r", "rows.json", "--poll", "3"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cmd.Flags().Lookup("rows").Value.String(); got != "rows.json" {
		t.Fatalf("rows = %q", got)
	}
}

func TestRootCommandRejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Execute accepted a positional argument")
	}
}

func TestRootCommandRejectsNegativePoll(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--poll", "-1"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Execute accepted a negative poll interval")
	}
}
