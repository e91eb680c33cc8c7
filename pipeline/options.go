package pipeline

// Options configures one [Extract] run (spec.md §6's public entry point).
type Options struct {
	// CompilerConfigPath is the path to the host compiler's options
	// file; its contents feed the cache fingerprint's tsconfig
	// component.
	CompilerConfigPath string
	// BasePath is the root directory entity declarations are loaded
	// from.
	BasePath string
	// UseCache enables the fingerprint-keyed disk cache of
	// [cachestore]. Defaults to true via [NewOptions].
	UseCache bool
}

// NewOptions returns [Options] with UseCache defaulted to true, per
// spec.md §6.
func NewOptions() Options {
	return Options{UseCache: true}
}
