package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

const (
	postsURL       = "https://api.example.com/posts"
	defaultTimeout = 10 * time.Second
)

var (
	ErrEmptyBody      = errors.New("empty response body")
	ErrInvalidPayload = errors.New("invalid posts payload")
)

type postPayload struct {
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

type PostDownloader struct {
	client *http.Client
	url    string
}

func NewPostDownloader(url string, timeout time.Duration) *PostDownloader {
	if url == "" {
		url = postsURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PostDownloader{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (d *PostDownloader) Download(ctx context.Context) ([]Post, error) {
	content, contentType, err := d.downloadPosts(ctx)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errors.Wrapf(ErrEmptyBody, "can't load posts from %s", d.url)
	}

	decoded, err := d.toUTF8(content, contentType)
	if err != nil {
		return nil, err
	}
	return d.decodePosts(decoded)
}

// toUTF8 only converts bodies with an explicit non-UTF-8 charset parameter.
// The body itself is never sniffed.
func (d *PostDownloader) toUTF8(content []byte, contentType string) ([]byte, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["charset"] == "" {
		return content, nil
	}

	contentEncoding, name := charset.Lookup(params["charset"])
	if contentEncoding == nil || name == "utf-8" {
		return content, nil
	}

	decoded, err := io.ReadAll(contentEncoding.NewDecoder().Reader(bytes.NewReader(content)))
	if err != nil {
		return nil, errors.Wrapf(err, "can't decode the %s body of %s response", name, d.url)
	}
	return decoded, nil
}

func (d *PostDownloader) downloadPosts(ctx context.Context) (content []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "can't create an http request for %s", d.url)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	r, err := d.client.Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "can't download from %s", d.url)
	}
	defer func() { _ = r.Body.Close() }()

	if r.StatusCode != http.StatusOK {
		return nil, "", errors.Errorf("can't download %s, unexpected status code %s", d.url, r.Status)
	}

	var reader io.ReadCloser
	switch r.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(r.Body)
		if err != nil {
			return nil, "", errors.Wrapf(err, "can't create a gzip reader for %s response", d.url)
		}
		defer func() { _ = reader.Close() }()
	default:
		reader = r.Body
	}

	content, err = io.ReadAll(reader)
	if err != nil {
		return nil, "", errors.Wrapf(err, "can't read the body of %s response", d.url)
	}
	return content, r.Header.Get("Content-Type"), nil
}

func (d *PostDownloader) decodePosts(content []byte) ([]Post, error) {
	var payload []postPayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, errors.Wrapf(ErrInvalidPayload, "%s: %v", d.url, err)
	}
	if payload == nil {
		return nil, errors.Wrapf(ErrInvalidPayload, "%s: expected an array of posts", d.url)
	}

	posts := make([]Post, 0, len(payload))
	for i, p := range payload {
		if p.Content == nil {
			return nil, errors.Wrapf(ErrInvalidPayload, "%s: post %d has no content", d.url, i)
		}
		var image string
		if p.ImageURL != nil {
			image = *p.ImageURL
		}
		posts = append(posts, NewPost(*p.Content, image))
	}
	return posts, nil
}
