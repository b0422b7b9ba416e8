package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/whopu/challenge/pkg/version.Version=...".
var (
	Version   = "0.1.0"
	AppName   = "challenge"
	BuildDate = "unknown"
	Commit    = ""
)

type Info struct {
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetInfo() Info {
	return Info{
		AppName:   AppName,
		Version:   Version,
		Commit:    commit(),
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	if i.Commit == "" {
		return fmt.Sprintf("%s %s (%s)", i.AppName, i.Version, i.Platform)
	}
	return fmt.Sprintf("%s %s+%s (%s)", i.AppName, i.Version, i.Commit, i.Platform)
}

// commit falls back to the vcs revision embedded by the go tool.
func commit() string {
	if Commit != "" {
		return Commit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
