package main

import (
	"bytes"
	"strings"
	"testing"
)

func runRootCommandForTest(args ...string) (string, error) {
	root := buildRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRootHelpListsCommands(t *testing.T) {
	output, err := runRootCommandForTest("--help")
	if err != nil {
		t.Fatalf("help: %v\n%s", err, output)
	}
	for _, cmd := range []string{"serve", "chat", "onboard", "version"} {
		if !strings.Contains(output, cmd) {
			t.Errorf("help output missing %q command", cmd)
		}
	}
}

func TestBareInvocationErrors(t *testing.T) {
	_, err := runRootCommandForTest()
	if err == nil {
		t.Fatal("running without a subcommand should error")
	}
	if !strings.Contains(err.Error(), "subcommand") {
		t.Errorf("err = %v", err)
	}
}
