package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func renderedPage(t *testing.T, view *PostListView) *goquery.Document {
	t.Helper()
	response := httptest.NewRecorder()
	view.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))

	assertStatus(t, response.Code, http.StatusOK)
	doc, err := goquery.NewDocumentFromReader(response.Body)
	assertNoError(t, err)
	return doc
}

func TestPostListView(t *testing.T) {
	image := "https://example.com/1.png"
	newView := func(t *testing.T) (*PostListView, *PostStore) {
		store := newRunningStore(t, loaderOf(NewPost("Hi :smile:", ""), NewPost("Picture", image)))
		return NewPostListView(store), store
	}

	t.Run("shows loading before mount", func(t *testing.T) {
		view, _ := newView(t)

		doc := renderedPage(t, view)

		if doc.Find("p.loading").Length() != 1 {
			t.Error("loading indicator is missing")
		}
		if n := doc.Find("div.post").Length(); n != 0 {
			t.Errorf("got %d posts, want 0", n)
		}
	})

	t.Run("renders posts after mount", func(t *testing.T) {
		view, store := newView(t)
		<-view.Mount(context.Background())
		posts := store.Posts()

		doc := renderedPage(t, view)

		if doc.Find("p.loading").Length() != 0 {
			t.Error("loading indicator is still shown")
		}
		items := doc.Find("div.post")
		if items.Length() != len(posts) {
			t.Fatalf("got %d posts, want %d", items.Length(), len(posts))
		}
		items.Each(func(i int, s *goquery.Selection) {
			if got := s.AttrOr("data-post", ""); got != posts[i].ID {
				t.Errorf("post %d: got key %q, want %q", i, got, posts[i].ID)
			}
			if got := s.Find("span.like_label").Text(); got != "Like" {
				t.Errorf("post %d: got label %q, want %q", i, got, "Like")
			}
			if got := s.Find("form").AttrOr("action", ""); got != "/posts/"+posts[i].ID+"/like" {
				t.Errorf("post %d: got action %q", i, got)
			}
		})

		first, second := items.Eq(0), items.Eq(1)
		if text := first.Find("p.post_text").Text(); strings.Contains(text, ":smile:") || !strings.HasPrefix(text, "Hi") {
			t.Errorf("got text %q", text)
		}
		if first.Find("img").Length() != 0 {
			t.Error("post without image renders an image")
		}
		if got, want := second.Find("img.post_image").AttrOr("src", ""), "/images?url="+url.QueryEscape(image); got != want {
			t.Errorf("got image src %q, want %q", got, want)
		}
	})

	t.Run("re-renders after toggle", func(t *testing.T) {
		view, store := newView(t)
		<-view.Mount(context.Background())
		posts := store.Posts()

		view.ToggleLike(posts[1].ID)
		doc := renderedPage(t, view)

		items := doc.Find("div.post")
		if got := items.Eq(0).Find("span.like_label").Text(); got != "Like" {
			t.Errorf("untouched post: got label %q, want %q", got, "Like")
		}
		liked := items.Eq(1).Find("button.like")
		if got := liked.Find("span.like_label").Text(); got != "Liked" {
			t.Errorf("got label %q, want %q", got, "Liked")
		}
		if got := liked.AttrOr("data-liked", ""); got != "true" {
			t.Errorf("got data-liked %q, want %q", got, "true")
		}
		if liked.Find("span.like_icon").Text() == items.Eq(0).Find("span.like_icon").Text() {
			t.Error("liked and unliked posts share the same icon")
		}
	})

	t.Run("stops rendering after unmount", func(t *testing.T) {
		view, store := newView(t)
		<-view.Mount(context.Background())
		view.Unmount()

		store.ToggleLike(store.Posts()[0].ID)
		doc := renderedPage(t, view)

		if got := doc.Find("div.post span.like_label").First().Text(); got != "Like" {
			t.Errorf("got label %q after unmount, want %q", got, "Like")
		}
	})
}

func TestRenderPageExpandsEmoji(t *testing.T) {
	page, err := renderPage([]Post{NewPost("I :heart: Go", "")}, Loaded)
	assertNoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	assertNoError(t, err)

	text := doc.Find("p.post_text").Text()
	if strings.Contains(text, ":heart:") || strings.Contains(text, "  ") {
		t.Errorf("got text %q", text)
	}
	if !strings.HasPrefix(text, "I ") || !strings.HasSuffix(text, " Go") {
		t.Errorf("got text %q", text)
	}
}

func TestLikeAffordance(t *testing.T) {
	likedIcon, likedLabel := likeAffordance(true)
	icon, label := likeAffordance(false)

	if likedLabel != "Liked" || label != "Like" {
		t.Errorf("got labels %q and %q", likedLabel, label)
	}
	if likedIcon == icon || likedIcon == "" || icon == "" {
		t.Errorf("got icons %q and %q", likedIcon, icon)
	}
}

func assertStatus(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("did not get correct status, got %d, want %d", got, want)
	}
}
