/*
Package storage archives downloaded bulletins to Dropbox.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/go-resty/resty/v2"

	"github.com/shanehull/bultentakip/internal/config"
)

const uploadEndpoint = "/2/files/upload"

// ErrDisabled is returned by Upload when no access token is configured.
var ErrDisabled = errors.New("dropbox upload disabled: no access token configured")

type uploadArg struct {
	Path       string `json:"path"`
	Mode       string `json:"mode"`
	Autorename bool   `json:"autorename"`
	Mute       bool   `json:"mute"`
}

// Dropbox uploads files to a fixed remote directory, overwriting any file
// already at the same path.
type Dropbox struct {
	http      *resty.Client
	token     string
	remoteDir string
}

func NewDropbox(cfg config.DropboxConfig, timeout time.Duration) *Dropbox {
	return &Dropbox{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
			SetTimeout(timeout),
		token:     cfg.AccessToken,
		remoteDir: cfg.UploadPath,
	}
}

func (d *Dropbox) Enabled() bool {
	return d.token != ""
}

// RemotePath is where the file at localPath is stored.
func (d *Dropbox) RemotePath(localPath string) string {
	return strings.TrimRight(d.remoteDir, "/") + "/" + filepath.Base(localPath)
}

// Upload sends the file at localPath and returns its remote path.
func (d *Dropbox) Upload(ctx context.Context, localPath string) (string, error) {
	if !d.Enabled() {
		return "", ErrDisabled
	}

	remotePath := d.RemotePath(localPath)

	arg, err := json.Marshal(uploadArg{
		Path: remotePath,
		Mode: "overwrite",
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode upload argument: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	resp, err := d.http.R().
		SetContext(ctx).
		SetAuthToken(d.token).
		SetHeader("Dropbox-API-Arg", asciiJSON(arg)).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(f).
		Post(uploadEndpoint)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to %s: %w", localPath, remotePath, err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("dropbox upload of %s failed with status %d: %s",
			remotePath, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return remotePath, nil
}

// asciiJSON escapes non-ASCII runes so the argument is a valid HTTP header value.
func asciiJSON(data []byte) string {
	var sb strings.Builder
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < utf8.RuneSelf {
			sb.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
			continue
		}
		fmt.Fprintf(&sb, `\u%04x`, r)
	}
	return sb.String()
}
