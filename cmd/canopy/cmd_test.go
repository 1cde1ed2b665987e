package main

import (
	"testing"
)

func TestClusterCmd_FlagsExist(t *testing.T) {
	cmd := clusterCmd()

	expectedFlags := []string{
		"config", "recursive", "exclude", "format", "output", "details",
		"workers", "r-canopy", "r-close", "r-merge", "r-step", "shuffle",
		"seed", "max-share-filter", "max-share", "sparsity-filter",
		"min-non-zero", "verbose",
	}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestClusterCmd_ShortFlags(t *testing.T) {
	cmd := clusterCmd()

	shortFlags := map[string]string{
		"c": "config",
		"r": "recursive",
		"f": "format",
		"o": "output",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestClusterCmd_NoPathsError(t *testing.T) {
	cmd := clusterCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"config", "recursive", "exclude", "json", "verbose"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_ShortFlags(t *testing.T) {
	cmd := checkCmd()

	shortFlags := map[string]string{
		"c": "config",
		"r": "recursive",
		"v": "verbose",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestCheckCmd_NoPathsError(t *testing.T) {
	cmd := checkCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestCheckExitError_Error(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() should return message, got '%s'", err.Error())
	}
}

func TestVersionCmd_FlagsExist(t *testing.T) {
	cmd := versionCmd()

	if cmd == nil {
		t.Fatal("versionCmd should not return nil")
	}

	verboseFlag := cmd.Flags().Lookup("verbose")
	if verboseFlag == nil {
		t.Error("Missing expected flag: --verbose")
	}
}

func TestVersionCmd_ShortFlag(t *testing.T) {
	cmd := versionCmd()

	flag := cmd.Flags().ShorthandLookup("v")
	if flag == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}

func TestLoggerFor_VerboseReturnsLogger(t *testing.T) {
	logger := loggerFor(true)
	if logger == nil {
		t.Fatal("loggerFor(true) returned nil")
	}
}

func TestLoggerFor_QuietReturnsLogger(t *testing.T) {
	logger := loggerFor(false)
	if logger == nil {
		t.Fatal("loggerFor(false) returned nil")
	}
}
