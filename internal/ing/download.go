package ing

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/shanehull/bultentakip/internal/types"
)

// FileName derives the local file name of a bulletin from the last segment of
// its URL path, kept percent-encoded as it appears in the URL.
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid bulletin URL '%s': %w", rawURL, err)
	}

	name := path.Base(u.EscapedPath())
	if name == "." || name == "/" || name == "" {
		return "", fmt.Errorf("cannot derive a file name from '%s'", rawURL)
	}
	return name, nil
}

// Download streams the bulletin's PDF into dir and returns the local path.
// A partially written file is removed on failure.
func (c *Client) Download(ctx context.Context, b types.Bulletin, dir string) (string, error) {
	name, err := FileName(b.URL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(b.URL)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", b.URL, err)
	}

	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return "", fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode(), b.URL)
	}

	filePath := filepath.Join(dir, name)
	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filePath, err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write %s: %w", filePath, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to close %s: %w", filePath, err)
	}

	return filePath, nil
}
