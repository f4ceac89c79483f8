package version

// Current is the release version, overridden at link time with
// -ldflags "-X github.com/simdem/archive-plugins/internal/version.Current=<x.y.z>".
var Current = "0.3.1"
