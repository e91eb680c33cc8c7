package pipeline

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for pipeline configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	CompilerConfigPath string
	BasePath           string
	UseCache           string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds CLI flag values for pipeline configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewExtractOptions] to build the
// [Options] value [Extract] consumes.
type Config struct {
	CompilerConfigPath string
	BasePath           string
	UseCache           bool
	Flags              Flags
}

// NewConfig returns a new [Config] with the default flag names and
// UseCache defaulted to true.
func NewConfig() *Config {
	f := Flags{
		CompilerConfigPath: "compiler-config",
		BasePath:           "base-path",
		UseCache:           "cache",
	}

	c := f.NewConfig()
	c.UseCache = true

	return c
}

// RegisterFlags adds extraction flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CompilerConfigPath, c.Flags.CompilerConfigPath, "",
		"path to the host compiler's options file")
	flags.StringVar(&c.BasePath, c.Flags.BasePath, ".",
		"root directory entity declarations are loaded from")
	flags.BoolVar(&c.UseCache, c.Flags.UseCache, true,
		"enable the fingerprint-keyed disk cache")
}

// RegisterCompletions registers shell completions for extraction flags
// on cmd. The base-path flag completes to directories; the others take
// no useful completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc(c.Flags.BasePath,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
}

// NewExtractOptions builds the [Options] [Extract] consumes from c's
// current flag values.
func (c *Config) NewExtractOptions() Options {
	return Options{
		CompilerConfigPath: c.CompilerConfigPath,
		BasePath:           c.BasePath,
		UseCache:           c.UseCache,
	}
}
