// Package version reports build information of the running binary.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version records build information.
type Version struct {
	Version string    `json:"version"`
	Commit  string    `json:"commit,omitempty"`
	Date    time.Time `json:"date,omitempty"`
	Dirty   bool      `json:"dirty"`
	Go      string    `json:"go,omitempty"`
}

func (v Version) String() string {
	if v.Go == "" {
		return v.Version
	}
	return v.Version + " (" + v.Go + ")"
}

const development = "development"

// V contains version information of the running binary.
var V = FromBuildInfo(debug.ReadBuildInfo())

// FromBuildInfo extracts version information from Go build information.
//
// A binary installed with "go install module@version" reports the module version.
// A binary built from a git checkout reports a pseudo-version derived from VCS stamping.
// Otherwise, the version is "development".
func FromBuildInfo(bi *debug.BuildInfo, ok bool) (v Version) {
	v.Version, v.Dirty = development, true
	if !ok || bi == nil {
		return v
	}
	v.Go = bi.GoVersion

	settings := map[string]string{}
	for _, kv := range bi.Settings {
		settings[kv.Key] = kv.Value
	}
	if settings["vcs"] == "git" && len(settings["vcs.revision"]) == 40 {
		if dt, e := time.Parse(time.RFC3339, settings["vcs.time"]); e == nil {
			v.Commit, v.Date = settings["vcs.revision"], dt
			v.Dirty = settings["vcs.modified"] == "true"
			dirtySuffix := ""
			if v.Dirty {
				dirtySuffix = "-dirty"
			}
			v.Version = fmt.Sprintf("v0.0.0-%s-%s%s", dt.UTC().Format("20060102150405"), v.Commit[:12], dirtySuffix)
		}
	}

	if mv := bi.Main.Version; mv != "" && mv != "(devel)" {
		v.Version, v.Dirty = mv, false
	}
	return v
}
