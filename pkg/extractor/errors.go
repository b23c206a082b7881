package extractor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotInstalled = errors.New("yt-dlp is not installed")
	ErrNoJSON       = errors.New("yt-dlp produced no JSON output")
)

// ExecError is a failed yt-dlp run. Its message is the last ERROR line of stderr.
type ExecError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	if msg := lastErrorLine(e.Stderr); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("yt-dlp exited with code %d", e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func lastErrorLine(stderr string) string {
	lines := strings.Split(strings.ReplaceAll(stderr, "\r", "\n"), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
		if last == "" {
			last = line
		}
	}
	return last
}
