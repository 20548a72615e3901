package version_test

import (
	"runtime/debug"
	"testing"

	"github.com/usnistgov/parhist/core/testenv"
	"github.com/usnistgov/parhist/core/version"
)

func TestFromBuildInfo(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	v := version.FromBuildInfo(nil, false)
	assert.Equal("development", v.Version)
	assert.True(v.Dirty)

	bi := &debug.BuildInfo{
		GoVersion: "go1.22.0",
		Main:      debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs", Value: "git"},
			{Key: "vcs.revision", Value: "0123456789abcdef0123456789abcdef01234567"},
			{Key: "vcs.time", Value: "2024-03-05T06:07:08Z"},
			{Key: "vcs.modified", Value: "false"},
		},
	}
	v = version.FromBuildInfo(bi, true)
	assert.Equal("v0.0.0-20240305060708-0123456789ab", v.Version)
	assert.Equal("0123456789abcdef0123456789abcdef01234567", v.Commit)
	assert.False(v.Dirty)
	assert.Equal("v0.0.0-20240305060708-0123456789ab (go1.22.0)", v.String())

	bi.Settings[3].Value = "true"
	v = version.FromBuildInfo(bi, true)
	assert.Equal("v0.0.0-20240305060708-0123456789ab-dirty", v.Version)
	assert.True(v.Dirty)

	bi.Main.Version = "v1.2.3"
	v = version.FromBuildInfo(bi, true)
	assert.Equal("v1.2.3", v.Version)
	assert.False(v.Dirty)
}
