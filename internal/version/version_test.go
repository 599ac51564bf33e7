package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValue(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersion_LdflagsOverride(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"

	if Version != "1.2.3" || GitCommit != "abc123def456" || BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("override failed: %q %q %q", Version, GitCommit, BuildDate)
	}
}

func TestColored_RoundTripsWithoutColor(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() {
		Version, color.NoColor = origVersion, origNoColor
	}()
	color.NoColor = true

	for _, v := range []string{"1.2.3", "0.1.0-dev", "nightly"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored(%q) = %q with colors disabled", v, got)
		}
	}
}
