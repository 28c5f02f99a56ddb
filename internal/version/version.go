package version

// Version information set at build time via ldflags
var (
	Version = "dev"
	GitHash = "dev"
)

func GetVersion() string {
	if Version == "dev" && GitHash != "dev" {
		return "dev-" + GitHash
	}
	return Version
}

// GetUserAgent returns the user agent string for HTTP requests
func GetUserAgent() string {
	return "baitwatch/" + GetVersion() + " (+https://github.com/baitwatch/baitwatch)"
}
