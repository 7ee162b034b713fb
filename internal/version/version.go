package version

// Version is set at build time with -ldflags "-X bedmap/internal/version.Version=...".
var Version = "(devel)"
