package service

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"postsapi/app/config"
	"postsapi/app/observability"
)

// Version is the CLI version, overridable with -ldflags.
var Version = "1.0.0"

// newLogger builds the process logger. Production always logs JSON.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	format := cfg.LogFormat
	if cfg.IsProduction() {
		format = "json"
	}
	return observability.NewLogger(w, cfg.LogLevel, format)
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
