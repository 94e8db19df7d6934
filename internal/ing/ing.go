/*
Package ing scrapes ING Turkey's monthly economic bulletin listing and
downloads the bulletin PDFs it links to.
*/
package ing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"

	"github.com/shanehull/bultentakip/internal/types"
)

const (
	wrapperSelector = "div.wrapper-content"
	titleSelector   = "strong"
	pdfLinkSelector = "a[href$='.pdf']"
	userAgent       = "bultentakip/1.0 (+https://github.com/shanehull/bultentakip)"
)

// ErrNoBulletins is returned when the listing page parses but yields nothing.
var ErrNoBulletins = errors.New("no bulletins found on listing page")

type Client struct {
	http       *resty.Client
	listingURL string
	origin     *url.URL
}

// NewClient creates a client for the listing at listingURL. Relative PDF links
// are resolved against the listing's origin.
func NewClient(listingURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing URL '%s': %w", listingURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("listing URL '%s' must be absolute", listingURL)
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &Client{
		http:       httpClient,
		listingURL: listingURL,
		origin:     &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
	}, nil
}

// FetchBulletins downloads the listing page and extracts its bulletins in
// page order.
func (c *Client) FetchBulletins(ctx context.Context) (types.Snapshot, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.listingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %s: %w", c.listingURL, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("received non-OK status code %d from %s", resp.StatusCode(), c.listingURL)
	}

	bulletins, err := ParseBulletins(resp.Body(), c.origin)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", c.listingURL, err)
	}

	if len(bulletins) == 0 {
		return nil, ErrNoBulletins
	}

	return bulletins, nil
}

// ParseBulletins extracts one bulletin per listing block: the first bold title
// and the first link ending in .pdf. Blocks missing either are skipped.
func ParseBulletins(body []byte, origin *url.URL) (types.Snapshot, error) {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	doc := goquery.NewDocumentFromNode(root)

	var bulletins types.Snapshot
	doc.Find(wrapperSelector).Each(func(_ int, wrapper *goquery.Selection) {
		titleNode := wrapper.Find(titleSelector).First()
		if titleNode.Length() == 0 {
			return
		}
		title := strings.TrimSpace(titleNode.Text())

		href, ok := wrapper.Find(pdfLinkSelector).First().Attr("href")
		if !ok {
			return
		}

		pdfURL, err := resolve(origin, strings.TrimSpace(href))
		if err != nil {
			return
		}

		bulletins = append(bulletins, types.Bulletin{
			Title: title,
			URL:   pdfURL,
		})
	})

	return bulletins, nil
}

func resolve(origin *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() || origin == nil {
		return ref.String(), nil
	}
	return origin.ResolveReference(ref).String(), nil
}
