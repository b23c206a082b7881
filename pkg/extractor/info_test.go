package extractor

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const sampleInfo = `{"_type":"video","id":"abc123","title":"Song","duration":212.5,
"webpage_url":"https://www.youtube.com/watch?v=abc123","ext":"webm",
"formats":[{"format_id":"sb0","vcodec":"images","acodec":"none","ext":"mhtml"},
{"format_id":"251","vcodec":"none","acodec":"opus","ext":"webm","abr":160}],
"requested_downloads":[{"filepath":"downloads/Song [abc123].mp3","ext":"mp3"}],
"filename":"downloads/Song [abc123].webm"}`

func TestDecodeInfo(t *testing.T) {
	stdout := "[youtube] stray line\r\n" + strings.ReplaceAll(sampleInfo, "\n", "") + "\n"

	info, err := decodeInfo([]byte(stdout))
	if err != nil {
		t.Fatalf("decodeInfo() error = %v", err)
	}
	if info.ID != "abc123" || info.Title != "Song" {
		t.Errorf("info = %+v", info)
	}
	if info.Duration == nil || *info.Duration != 212.5 {
		t.Errorf("Duration = %v, want 212.5", info.Duration)
	}
	if len(info.Formats) != 2 {
		t.Fatalf("len(Formats) = %d, want 2", len(info.Formats))
	}
	if !info.Formats[0].ImageOnly() || info.Formats[1].ImageOnly() {
		t.Errorf("ImageOnly mismatch: %+v", info.Formats)
	}
	if got := info.Filepath(); got != "downloads/Song [abc123].mp3" {
		t.Errorf("Filepath() = %q", got)
	}
	if got := info.PreparedFilename(); got != "downloads/Song [abc123].webm" {
		t.Errorf("PreparedFilename() = %q", got)
	}
}

func TestDecodeInfo_NoJSON(t *testing.T) {
	_, err := decodeInfo([]byte("nothing useful\n"))
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("err = %v, want ErrNoJSON", err)
	}
	_, err = decodeInfo(nil)
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("err = %v, want ErrNoJSON", err)
	}
}

func TestFormatKeepsRawDescriptor(t *testing.T) {
	raw := `{"format_id":"251","vcodec":"none","acodec":"opus","abr":160,"filesize":12345}`
	var f Format
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != raw {
		t.Errorf("Marshal = %s, want %s", out, raw)
	}
}

func TestExecErrorMessage(t *testing.T) {
	stderr := "WARNING: something\nERROR: [youtube] abc: Private video. Sign in if you've been granted access\n"
	err := &ExecError{ExitCode: 1, Stderr: stderr, Err: errors.New("exit status 1")}
	if got := err.Error(); got != "ERROR: [youtube] abc: Private video. Sign in if you've been granted access" {
		t.Errorf("Error() = %q", got)
	}

	plain := &ExecError{ExitCode: 2, Err: errors.New("exit status 2")}
	if got := plain.Error(); got != "exit status 2" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(plain, plain.Err) {
		t.Error("ExecError should unwrap to its cause")
	}
}
