// Package version records the build identity of the ndca binary. Every
// variable is a plain string so a release build can stamp it with
// -ldflags "-X ndca/internal/version.Version=...".
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version is the semantic version of this build. Development builds
// carry the -dev suffix until a release stamps a tag over it.
var Version = "0.1.0-dev"

// GitCommit, GitMessage and BuildDate describe the commit a release was
// cut from; all three stay empty in local builds.
var (
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

var componentColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored renders Version with each dotted component in its own color.
// Components past the third keep the last color; any non-semver value
// set through ldflags still round-trips unchanged modulo escape codes.
func Colored() string {
	parts := strings.SplitN(Version, ".", len(componentColors))
	for i, part := range parts {
		parts[i] = componentColors[i].Sprint(part)
	}
	return strings.Join(parts, ".")
}
