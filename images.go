package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

type ImageLoader struct {
	client *http.Client
	known  func(imageURL string) bool
}

func NewImageLoader(timeout time.Duration, known func(imageURL string) bool) *ImageLoader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ImageLoader{
		client: &http.Client{Timeout: timeout},
		known:  known,
	}
}

func PostImages(store *PostStore) func(imageURL string) bool {
	return func(imageURL string) bool {
		for _, post := range store.Posts() {
			if post.HasImage() && post.Image == imageURL {
				return true
			}
		}
		return false
	}
}

func (l *ImageLoader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("missing url"))
		return
	}
	if l.known != nil && !l.known(imageURL) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	content, contentType, err := l.fetch(r.Context(), imageURL)
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	_, _ = w.Write(content)
}

func (l *ImageLoader) fetch(ctx context.Context, imageURL string) (content []byte, contentType string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "can't create an http request for %s", imageURL)
	}

	r, err := l.client.Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "can't download image %s", imageURL)
	}
	defer func() { _ = r.Body.Close() }()

	if r.StatusCode != http.StatusOK {
		return nil, "", errors.Errorf("can't download image %s, unexpected status code %s", imageURL, r.Status)
	}

	content, err = io.ReadAll(r.Body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "can't read image %s", imageURL)
	}
	return content, r.Header.Get("Content-Type"), nil
}
