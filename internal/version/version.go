package version

// Version is the current version of the FirScript engine.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/JungleDome/FirScript/internal/version.Version=1.2.3"
// The value "main" indicates a development build, for which compatibility
// checks are skipped.
var Version = "v0.1.0"

// GetVersion returns the current engine version.
func GetVersion() string {
	return Version
}
