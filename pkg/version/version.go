package version

// version is stamped at build time with
// -ldflags "-X github.com/cbodonnell/sceneflow/pkg/version.version=<tag>".
var version = "dev"

func Get() string {
	return version
}
