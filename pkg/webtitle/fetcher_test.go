package webtitle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "title element",
			doc:  `<html><head><title>  Go Packages </title></head><body></body></html>`,
			want: "Go Packages",
		},
		{
			name: "og title when title is blank",
			doc:  `<html><head><title> </title><meta property="og:title" content="Open Graph"></head></html>`,
			want: "Open Graph",
		},
		{
			name: "twitter title last",
			doc:  `<html><head><meta name="twitter:title" content="Card Title"/></head></html>`,
			want: "Card Title",
		},
		{
			name: "title wins over meta",
			doc:  `<head><meta property="og:title" content="OG"><title>Real</title></head>`,
			want: "Real",
		},
		{
			name: "nothing present",
			doc:  `<html><head></head><body><h1>Hello</h1></body></html>`,
			want: "",
		},
		{
			name: "svg title ignored",
			doc:  `<html><body><svg><title>icon</title></svg></body></html>`,
			want: "",
		},
		{
			name: "stray title after body",
			doc:  `<html><head><meta property="og:title" content="OG"></head><body><svg><title>icon</title></svg><title>Late</title></body></html>`,
			want: "Late",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTitle(strings.NewReader(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPFetcherFetchTitle(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Example Domain</title></head></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second, nil)
	assert.Equal(t, "Example Domain", f.FetchTitle(context.Background(), srv.URL))
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestHTTPFetcherDecodesCharset(t *testing.T) {
	latin1 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		_, _ = w.Write([]byte("<html><head><title>Caf\xe9 M\xfcller</title></head></html>"))
	}))
	defer latin1.Close()

	metaCharset := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><meta charset=\"windows-1252\"><title>Na\xefve \x93quotes\x94</title></head></html>"))
	}))
	defer metaCharset.Close()

	f := NewHTTPFetcher(time.Second, nil)
	ctx := context.Background()

	got := f.FetchTitle(ctx, latin1.URL)
	assert.Equal(t, "Café Müller", got)
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "Naïve \u201cquotes\u201d", f.FetchTitle(ctx, metaCharset.URL))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "ab", sanitize("a\x00b"))
	assert.Equal(t, "ok", sanitize(" o\xffk "))
	assert.Equal(t, "", sanitize("\x00"))
	assert.Equal(t, "Zoë", sanitize("Zoë"))
}

func TestHTTPFetcherFallsBackToURL(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer notFound.Close()

	noTitle := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>plain</body></html>`))
	}))
	defer noTitle.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`<title>late</title>`))
	}))
	defer slow.Close()

	var warnings int32
	f := NewHTTPFetcher(50*time.Millisecond, func(string, error) {
		atomic.AddInt32(&warnings, 1)
	})
	ctx := context.Background()

	assert.Equal(t, notFound.URL, f.FetchTitle(ctx, notFound.URL))
	assert.Equal(t, noTitle.URL, f.FetchTitle(ctx, noTitle.URL))
	assert.Equal(t, slow.URL, f.FetchTitle(ctx, slow.URL))
	assert.Equal(t, "http://127.0.0.1:1/unreachable", f.FetchTitle(ctx, "http://127.0.0.1:1/unreachable"))

	// noTitle is a successful fetch without a title, not a failure.
	assert.Equal(t, int32(3), atomic.LoadInt32(&warnings))
}

type countingFetcher struct {
	calls int
	title string
}

func (f *countingFetcher) FetchTitle(_ context.Context, url string) string {
	f.calls++
	if f.title == "" {
		return url
	}
	return f.title
}

func TestCachedFetcher(t *testing.T) {
	ctx := context.Background()

	next := &countingFetcher{title: "Cached"}
	f := NewCachedFetcher(next, NewMemoryCache(time.Minute))

	assert.Equal(t, "Cached", f.FetchTitle(ctx, "https://a.example"))
	assert.Equal(t, "Cached", f.FetchTitle(ctx, "https://a.example"))
	assert.Equal(t, 1, next.calls)

	failing := &countingFetcher{}
	f = NewCachedFetcher(failing, NewMemoryCache(time.Minute))

	assert.Equal(t, "https://b.example", f.FetchTitle(ctx, "https://b.example"))
	assert.Equal(t, "https://b.example", f.FetchTitle(ctx, "https://b.example"))
	assert.Equal(t, 2, failing.calls, "fallback titles are not cached")
}
