package extractor

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/imbecility/socialdl/pkg/client"
)

// ReleaseBaseURL is where standalone yt-dlp builds and their checksums are fetched from.
var ReleaseBaseURL = "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

const checksumsFile = "SHA2-256SUMS"

var ErrChecksumMismatch = errors.New("checksum mismatch")

// EnsureBinary returns a working yt-dlp executable. The requested path is tried
// first, then a previously installed copy in installDir, then a fresh download.
func EnsureBinary(ctx context.Context, c client.HTTPClient, requestedPath, installDir string) (string, error) {
	if isWorking(ctx, requestedPath) {
		slog.Debug("yt-dlp found and working", "path", requestedPath)
		return requestedPath, nil
	}

	if installDir == "" {
		return "", ErrNotInstalled
	}

	fileName, err := releaseAsset(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	localPath := filepath.Join(installDir, fileName)

	if _, err := os.Stat(localPath); err == nil {
		if isWorking(ctx, localPath) {
			slog.Debug("Found installed yt-dlp", "path", localPath)
			return localPath, nil
		}
		if rmerr := os.Remove(localPath); rmerr != nil {
			slog.Warn("Failed to delete a broken yt-dlp executable", "path", localPath, "err", rmerr)
		}
	}

	slog.Warn("yt-dlp not found or invalid. Attempting to download it...", "path", requestedPath)

	if err := os.MkdirAll(installDir, 0755); err != nil {
		return "", fmt.Errorf("%w: create install dir: %v", ErrNotInstalled, err)
	}

	want, err := releaseChecksum(ctx, c, fileName)
	if err != nil {
		return "", fmt.Errorf("%w: checksums: %v", ErrNotInstalled, err)
	}

	downloadURL := ReleaseBaseURL + fileName
	slog.Info("Downloading yt-dlp", "url", downloadURL)
	if err := downloadFile(ctx, c, downloadURL, localPath, want); err != nil {
		return "", fmt.Errorf("%w: download: %w", ErrNotInstalled, err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(localPath, 0755); err != nil {
			return "", fmt.Errorf("%w: chmod: %v", ErrNotInstalled, err)
		}
	}

	if isWorking(ctx, localPath) {
		slog.Info("yt-dlp installed successfully", "path", localPath)
		return localPath, nil
	}

	return "", fmt.Errorf("%w: downloaded binary is not working", ErrNotInstalled)
}

func releaseAsset(goos, goarch string) (string, error) {
	switch goos {
	case "windows":
		return "yt-dlp.exe", nil
	case "darwin":
		return "yt-dlp_macos", nil
	case "linux":
		if goarch == "arm64" {
			return "yt-dlp_linux_aarch64", nil
		}
		return "yt-dlp_linux", nil
	default:
		return "", fmt.Errorf("auto-install not supported for OS: %s", goos)
	}
}

func isWorking(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}
	_, err := ytdlp.New().SetExecutable(path).Run(ctx, "--version")
	return err == nil
}

// releaseChecksum reads the expected sha256 of asset from the release checksum list.
func releaseChecksum(ctx context.Context, c client.HTTPClient, asset string) (string, error) {
	resp, err := client.Get(ctx, c, ReleaseBaseURL+checksumsFile)
	if err != nil {
		return "", err
	}
	defer client.CloseBody(resp.Body)

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		// "<hex>  <name>", the name may carry a "*" binary marker
		fields := strings.Fields(scanner.Text())
		if len(fields) == 2 && strings.TrimPrefix(fields[1], "*") == asset {
			return strings.ToLower(fields[0]), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no checksum listed for %s", asset)
}

// downloadFile writes url to dest only if its sha256 matches wantSum.
func downloadFile(ctx context.Context, c client.HTTPClient, url, dest, wantSum string) error {
	resp, err := client.Get(ctx, c, url)
	if err != nil {
		return err
	}
	defer client.CloseBody(resp.Body)

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if got := hex.EncodeToString(h.Sum(nil)); got != wantSum {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: got %s, want %s", ErrChecksumMismatch, got, wantSum)
	}
	return os.Rename(tmp, dest)
}
