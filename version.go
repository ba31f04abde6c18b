package furigo

const (
	Name        = "furigo"
	Description = "Japanese/Chinese selection translator with furigana reading aids"
	Version     = "0.1.0"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/ZaguanLabs/furigo.GitCommit=$(git rev-parse HEAD)"
var (
	GitCommit string
	BuildDate string
)

// FullVersion is Version with the short commit appended when one was built in.
func FullVersion() string {
	if GitCommit == "" {
		return Version
	}
	short := GitCommit
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + "+" + short
}

// UserAgent identifies furigo in outgoing HTTP requests.
func UserAgent() string {
	return Name + "/" + FullVersion()
}
