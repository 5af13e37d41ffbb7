package version

// Version is overridden at build time with -ldflags "-X protgroup/internal/version.Version=...".
var Version = "dev"
