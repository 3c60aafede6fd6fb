// Package version reports the build identity of a binary hosting redis
// facades. Release builds set the variables with -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/redisfacade/version.Version=1.4.0"
//
// Development builds fall back to the VCS stamp embedded by the toolchain.
package version

import (
	"fmt"
	"runtime/debug"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the resolved build identity.
type Info struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit,omitempty"`
	GoVersion   string    `json:"go_version"`
	RedisDriver string    `json:"redis_driver"`
	BuildDate   time.Time `json:"build_date,omitzero"`
	Dirty       bool      `json:"dirty"`
}

// Get resolves Info from the link-time variables and the embedded build info.
func Get() Info {
	info := Info{
		Version:     Version,
		GitCommit:   GitCommit,
		RedisDriver: goredis.Version(),
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		case "vcs.time":
			if info.BuildDate.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildDate = t
				}
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short renders the version as "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

func (i Info) String() string {
	return fmt.Sprintf("%s (go-redis %s, %s)", i.Short(), i.RedisDriver, i.GoVersion)
}
