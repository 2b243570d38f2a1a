package fixture

// Defaults for a bare generator run. The generate subcommand exposes flags
// for each of these, so running with no flags reproduces exactly this
// configuration.
const (
	// DefaultBaseDir is the root where the case trees are created.
	DefaultBaseDir = "test_cases"

	// DefaultSeed is the base seed for randomized case content.
	DefaultSeed int64 = 1337

	// Sizes in bytes.
	SmallTextSize   = 256
	SmallBinarySize = 512

	// LargeFileSize is the logical size of the large-file case. The file is
	// created sparse by default so it costs almost no real disk space.
	LargeFileSize int64 = 10 * 1024 * 1024 * 250

	// largeFileWriteCap bounds the fallback full write when sparse creation
	// fails, so that fallback cannot fill the disk arbitrarily.
	largeFileWriteCap int64 = 10 * 1024 * 1024 * 250

	// DefaultManyFiles is the file count for the many-files case. MaxManyFiles
	// is the ceiling for stress runs; ext3 recommends staying well below
	// directory entry counts in the millions, so don't raise it casually.
	DefaultManyFiles = 200
	MaxManyFiles     = 1 << 20
)

// Config holds everything a generator run needs. Zero value is not useful;
// start from DefaultConfig and override.
type Config struct {
	// BaseDir is cleared and recreated at the start of every run.
	BaseDir string
	// Seed is the base random seed. Each case derives its own source from it.
	Seed int64

	TextSize      int
	BinarySize    int
	ManyFiles     int
	LargeFileSize int64

	// Sparse creates the large file with a seek past the end instead of
	// writing real bytes.
	Sparse bool
	// TrySymlinks and TryPermissions gate the operations that may be denied
	// on some platforms. Failures are reported, never fatal.
	TrySymlinks    bool
	TryPermissions bool
	// WriteManifest emits manifest.txt at each case root.
	WriteManifest bool
	// LongPaths includes the path-length limit case, which is excluded from
	// the default run.
	LongPaths bool
}

// DefaultConfig returns the configuration of a bare generator run.
func DefaultConfig() Config {
	return Config{
		BaseDir:        DefaultBaseDir,
		Seed:           DefaultSeed,
		TextSize:       SmallTextSize,
		BinarySize:     SmallBinarySize,
		ManyFiles:      DefaultManyFiles,
		LargeFileSize:  LargeFileSize,
		Sparse:         true,
		TrySymlinks:    true,
		TryPermissions: true,
		WriteManifest:  true,
	}
}
