// Package version reports the build version.
package version

// version and revision are set at build time with -ldflags.
var (
	version  = "v0.1.0"
	revision = ""
)

// String returns the version, followed by the revision when known.
func String() string {
	if revision == "" {
		return version
	}
	return version + "-" + revision
}
