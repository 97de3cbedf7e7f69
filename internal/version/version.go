// Package version хранит сведения о сборке, подставляемые через -ldflags.
package version

import "fmt"

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Info возвращает версию, коммит и дату сборки.
func Info() (v, c, d string) { return version, commit, buildDate }

// String возвращает сведения о сборке одной строкой для логов и health check.
func String() string {
	return fmt.Sprintf("version=%s commit=%s built=%s", version, commit, buildDate)
}
