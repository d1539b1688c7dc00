package main

import (
	"bytes"
	"runtime/debug"
	"testing"
)

// TestResolveVersion_PreferLdflags verifies that ldflags version takes precedence
func TestResolveVersion_PreferLdflags(t *testing.T) {
	result := resolveVersion("v1.2.3", &debug.BuildInfo{
		Main: debug.Module{Version: "v0.0.0"},
	})

	if result != "v1.2.3" {
		t.Errorf("should prefer ldflags version, got: %s", result)
	}
}

// TestResolveVersion_FallbackToBuildInfo verifies that build info is used when ldflags is "dev",
// which is what go install github.com/gauthierbraillon/bragboard/cmd/bragboard@v1.2.3 produces.
func TestResolveVersion_FallbackToBuildInfo(t *testing.T) {
	result := resolveVersion("dev", &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
	})

	if result != "v1.2.3" {
		t.Errorf("should use build info version when ldflags is 'dev', got: %s", result)
	}
}

// TestResolveVersion_IgnoreDevel verifies that "(devel)" is treated as "dev"
func TestResolveVersion_IgnoreDevel(t *testing.T) {
	result := resolveVersion("dev", &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
	})

	if result != "dev" {
		t.Errorf("should return 'dev' when build info is '(devel)', got: %s", result)
	}
}

// TestResolveVersion_NilBuildInfo handles nil build info gracefully
func TestResolveVersion_NilBuildInfo(t *testing.T) {
	result := resolveVersion("dev", nil)

	if result != "dev" {
		t.Errorf("should return 'dev' when build info is nil, got: %s", result)
	}
}

// TestRootCmd_VersionFlagUsesBragboardTemplate verifies what `bragboard --version` prints
func TestRootCmd_VersionFlagUsesBragboardTemplate(t *testing.T) {
	saved := version
	version = "v2.4.0"
	t.Cleanup(func() { version = saved })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version should not fail, got: %v", err)
	}
	if got := out.String(); got != "bragboard version v2.4.0\n" {
		t.Errorf("should print the bragboard version line, got: %q", got)
	}
}
