package ing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shanehull/bultentakip/internal/types"
)

const listingHTML = `<!DOCTYPE html>
<html>
<body>
  <div class="wrapper-content">
    <p><strong> Aylık Ekonomi Bülteni - Mart 2024 </strong></p>
    <a href="/medium/mart-2024.pdf">İndir</a>
    <a href="/medium/mart-2024-ek.pdf">Ek</a>
  </div>
  <div class="wrapper-content">
    <strong>Aylık Ekonomi Bülteni - Şubat 2024</strong>
    <a href="https://cdn.example.com/subat-2024.pdf">İndir</a>
  </div>
  <div class="wrapper-content">
    <strong>Duyuru</strong>
    <a href="/duyuru.html">Detay</a>
  </div>
  <div class="wrapper-content">
    <a href="/medium/basliksiz.pdf">İndir</a>
  </div>
  <div class="other">
    <strong>Aylık Ekonomi Bülteni - Ocak 2024</strong>
    <a href="/medium/ocak-2024.pdf">İndir</a>
  </div>
</body>
</html>`

func TestParseBulletins(t *testing.T) {
	origin, err := url.Parse("https://www.ing.com.tr/")
	require.NoError(t, err)

	got, err := ParseBulletins([]byte(listingHTML), origin)
	require.NoError(t, err)

	want := types.Snapshot{
		{Title: "Aylık Ekonomi Bülteni - Mart 2024", URL: "https://www.ing.com.tr/medium/mart-2024.pdf"},
		{Title: "Aylık Ekonomi Bülteni - Şubat 2024", URL: "https://cdn.example.com/subat-2024.pdf"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseBulletins mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBulletins_Empty(t *testing.T) {
	got, err := ParseBulletins([]byte("<html><body><p>bakım</p></body></html>"), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func newTestServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchBulletins_ResolvesAgainstOrigin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tr/ing/ekonomi-sayfasi/aylik-ekonomi-bulteni", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(listingHTML))
	})
	srv := newTestServer(t, mux)

	c, err := NewClient(srv.URL+"/tr/ing/ekonomi-sayfasi/aylik-ekonomi-bulteni", 5*time.Second)
	require.NoError(t, err)

	got, err := c.FetchBulletins(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, srv.URL+"/medium/mart-2024.pdf", got[0].URL)
}

func TestFetchBulletins_NonOKStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	srv := newTestServer(t, mux)

	c, err := NewClient(srv.URL+"/", 5*time.Second)
	require.NoError(t, err)

	_, err = c.FetchBulletins(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchBulletins_NoBulletins(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	})
	srv := newTestServer(t, mux)

	c, err := NewClient(srv.URL+"/", 5*time.Second)
	require.NoError(t, err)

	_, err = c.FetchBulletins(context.Background())
	assert.True(t, errors.Is(err, ErrNoBulletins))
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewClient("/tr/ing", time.Second)
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	testCases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.ing.com.tr/medium/mart-2024.pdf", "mart-2024.pdf", true},
		{"https://www.ing.com.tr/medium/mart-2024.pdf?v=2", "mart-2024.pdf", true},
		{"https://x/mart.pdf", "mart.pdf", true},
		{"https://x/medium/Ocak%202024.pdf", "Ocak%202024.pdf", true},
		{"https://www.ing.com.tr/", "", false},
		{"https://www.ing.com.tr", "", false},
	}

	for _, tc := range testCases {
		got, err := FileName(tc.url)
		if !tc.ok {
			assert.Error(t, err, tc.url)
			continue
		}
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.want, got)
	}
}

func TestDownload(t *testing.T) {
	pdf := []byte("%PDF-1.4 bulletin body")

	mux := http.NewServeMux()
	mux.HandleFunc("/medium/mart-2024.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	})
	srv := newTestServer(t, mux)

	c, err := NewClient(srv.URL+"/", 5*time.Second)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "downloads")
	path, err := c.Download(context.Background(), types.Bulletin{
		Title: "Aylık Ekonomi Bülteni - Mart 2024",
		URL:   srv.URL + "/medium/mart-2024.pdf",
	}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "mart-2024.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestDownload_NonOKStatusLeavesNoFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := newTestServer(t, mux)

	c, err := NewClient(srv.URL+"/", 5*time.Second)
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = c.Download(context.Background(), types.Bulletin{URL: srv.URL + "/missing.pdf"}, dir)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "missing.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownload_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewClient(addr+"/", time.Second)
	require.NoError(t, err)

	_, err = c.Download(context.Background(), types.Bulletin{URL: addr + "/x.pdf"}, t.TempDir())
	assert.Error(t, err)
}
