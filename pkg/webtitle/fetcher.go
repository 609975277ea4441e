package webtitle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

const (
	DefaultTimeout = 5 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	// Titles live in <head>; no need to read whole documents.
	maxBodyBytes = 1 << 20
)

// Fetcher resolves a human readable title for a URL.
// FetchTitle never fails: on any problem it returns the URL itself.
type Fetcher interface {
	FetchTitle(ctx context.Context, url string) string
}

// WarnFunc receives absorbed failures so callers can log them.
type WarnFunc func(url string, err error)

type HTTPFetcher struct {
	client *http.Client
	warn   WarnFunc
}

func NewHTTPFetcher(timeout time.Duration, warn WarnFunc) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if warn == nil {
		warn = func(string, error) {}
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		warn:   warn,
	}
}

func (f *HTTPFetcher) FetchTitle(ctx context.Context, url string) string {
	title, err := f.fetch(ctx, url)
	if err != nil {
		f.warn(url, err)
		return url
	}
	if title = sanitize(title); title == "" {
		return url
	}
	return title
}

// sanitize drops what a PostgreSQL text column refuses: invalid UTF-8 and NUL.
func sanitize(title string) string {
	title = strings.ToValidUTF8(title, "")
	title = strings.ReplaceAll(title, "\x00", "")
	return strings.TrimSpace(title)
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// Decode to UTF-8 using the header charset, a <meta charset> or sniffing.
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}
	return ExtractTitle(body)
}

// ExtractTitle reads an HTML document and returns, in order of preference,
// the <title> text, the og:title meta content or the twitter:title meta
// content. It returns "" when none is present. A <title> outside <head> still
// counts; titles of inline SVG do not.
func ExtractTitle(r io.Reader) (string, error) {
	var title, ogTitle, twitterTitle string
	inTitle := false
	svgDepth := 0

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return "", err
			}
			return pick(title, ogTitle, twitterTitle), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Title:
				inTitle = title == "" && svgDepth == 0
			case atom.Meta:
				prop, name, content := metaAttrs(tok)
				if prop == "og:title" && ogTitle == "" {
					ogTitle = strings.TrimSpace(content)
				}
				if name == "twitter:title" && twitterTitle == "" {
					twitterTitle = strings.TrimSpace(content)
				}
			case atom.Body:
				// Nothing later can beat a <title> already seen.
				if title != "" {
					return title, nil
				}
			case atom.Svg:
				if tok.Type == html.StartTagToken {
					svgDepth++
				}
			}

		case html.TextToken:
			if inTitle {
				title += string(z.Text())
			}

		case html.EndTagToken:
			switch tok := z.Token(); tok.DataAtom {
			case atom.Title:
				inTitle = false
				title = strings.TrimSpace(title)
			case atom.Svg:
				if svgDepth > 0 {
					svgDepth--
				}
			}
		}
	}
}

func metaAttrs(tok html.Token) (property, name, content string) {
	for _, attr := range tok.Attr {
		switch strings.ToLower(attr.Key) {
		case "property":
			property = strings.ToLower(attr.Val)
		case "name":
			name = strings.ToLower(attr.Val)
		case "content":
			content = attr.Val
		}
	}
	return property, name, content
}

func pick(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}
