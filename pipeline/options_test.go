package pipeline_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/flizzeri/schemaforge/pipeline"
)

func TestNewOptionsDefaultsUseCacheTrue(t *testing.T) {
	t.Parallel()

	assert.True(t, pipeline.NewOptions().UseCache)
}

func TestConfigRegisterFlagsPopulatesOptions(t *testing.T) {
	t.Parallel()

	c := pipeline.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	require := assert.New(t)
	require.NoError(flags.Parse([]string{"--base-path=/tmp/x", "--cache=false"}))

	opts := c.NewExtractOptions()
	require.Equal("/tmp/x", opts.BasePath)
	require.False(opts.UseCache)
}
