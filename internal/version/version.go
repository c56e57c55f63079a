package version

// Version is overridden at link time: -ldflags "-X graphseed/internal/version.Version=..."
var Version = "0.1.0-dev"
