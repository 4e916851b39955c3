package version

// Version is the tool version. Release builds override it via
// -ldflags "-X savesync/src/version.Version=...".
var Version = "0.1.0-dev"
