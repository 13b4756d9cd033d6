// Package main provides tests for the sharplint CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/sharplint/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(buf.String(), "sharplint v") {
		t.Errorf("version output should contain 'sharplint v', got: %s", buf.String())
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	for _, expected := range []string{"lint", "fix", "rules", "init", "ast"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"compile"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unknown command")
	}
}
