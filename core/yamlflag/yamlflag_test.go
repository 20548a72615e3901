package yamlflag_test

import (
	"flag"
	"testing"

	"github.com/usnistgov/parhist/core/testenv"
	"github.com/usnistgov/parhist/core/yamlflag"
)

type sampleConfig struct {
	Count  int    `json:"count"`
	Name   string `json:"name,omitempty"`
	Nested struct {
		Enabled bool `json:"enabled"`
	} `json:"nested"`
}

func TestInline(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	cfg := sampleConfig{Name: "default"}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var v flag.Getter = yamlflag.New(&cfg)
	fs.Var(v, "cfg", "")
	require.NoError(fs.Parse([]string{"-cfg", "count: 7\nnested:\n  enabled: true\n"}))

	assert.Equal(7, cfg.Count)
	assert.Equal("default", cfg.Name)
	assert.True(cfg.Nested.Enabled)
	assert.Equal(`{"count":7,"name":"default","nested":{"enabled":true}}`, fs.Lookup("cfg").Value.String())
}

func TestFile(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	filename := testenv.WriteTemp(t, []byte(`{"count": 3, "name": "A"}`), "cfg.yaml")

	var cfg sampleConfig
	v := yamlflag.New(&cfg)
	require.NoError(v.Set("@" + filename))
	assert.Equal(3, cfg.Count)
	assert.Equal("A", cfg.Name)
	assert.Same(&cfg, v.Ptr())
	assert.Same(&cfg, v.Get())

	assert.Error(v.Set("@" + filename + ".missing"))
	assert.Error(v.Set("count: [1"))
}

func TestUnknownKey(t *testing.T) {
	assert, _ := testenv.MakeAR(t)

	var cfg sampleConfig
	v := yamlflag.New(&cfg)
	e := v.Set("count: 1\ncuont: 2\n")
	assert.ErrorContains(e, "cuont")
	assert.ErrorContains(e, "sampleConfig")
}

func TestNil(t *testing.T) {
	assert, require := testenv.MakeAR(t)

	v := yamlflag.New[sampleConfig](nil)
	require.NotNil(v.Ptr())
	assert.NoError(v.Set(""))
	assert.NoError(v.Set("count: 5"))
	assert.Equal(5, v.Ptr().Count)

	var unset *yamlflag.Value[sampleConfig]
	assert.Equal("", unset.String())
}
