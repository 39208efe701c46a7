package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// writeExtension writes a shell script named pcmp-<name> in dir.
func writeExtension(t *testing.T, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in tests")
	}
	path := filepath.Join(dir, "pcmp-"+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestExtensionEnvironment(t *testing.T) {
	tempDir := t.TempDir()
	path := writeExtension(t, tempDir, "hello", `
echo "`+EnvConfig+`=$`+EnvConfig+`"
echo "`+EnvTable+`=$`+EnvTable+`"
echo "`+EnvVerbose+`=$`+EnvVerbose+`"
echo "args=$*"
`)

	expectedConfig := filepath.Join(tempDir, "pcmp.yaml")
	expectedTable := filepath.Join(tempDir, "peers.xlsx")
	oldConfig, oldTable, oldVerbose := *configFile, *tableFile, *Verbose
	*configFile, *tableFile, *Verbose = expectedConfig, expectedTable, true
	defer func() { *configFile, *tableFile, *Verbose = oldConfig, oldTable, oldVerbose }()

	cmd := extensionCommand(path, []string{"-n", "3"})
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		t.Fatalf("extension failed: %v", err)
	}

	output := stdout.String()
	expectedLines := []string{
		EnvConfig + "=" + expectedConfig,
		EnvTable + "=" + expectedTable,
		EnvVerbose + "=" + strconv.FormatBool(true),
		"args=-n 3",
	}
	for _, line := range expectedLines {
		if !strings.Contains(output, line) {
			t.Errorf("Expected output to contain %q, but got:\n%s", line, output)
		}
	}
}

func TestRunExtension(t *testing.T) {
	tempDir := t.TempDir()
	writeExtension(t, tempDir, "fail", "exit 3\n")
	t.Setenv("PATH", tempDir)

	ran, code := RunExtension("fail", nil)
	if !ran || code != 3 {
		t.Errorf("RunExtension(fail) = (%v, %d), want (true, 3)", ran, code)
	}

	ran, code = RunExtension("missing", nil)
	if ran || code != 0 {
		t.Errorf("RunExtension(missing) = (%v, %d), want (false, 0)", ran, code)
	}
}
