package main

import (
	"bytes"
	"context"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/kyokomi/emoji"
	"github.com/pkg/errors"
)

var pageTemplate = template.Must(template.New("posts").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Posts</title>
<style>
body { font-family: sans-serif; max-width: 600px; margin: 0 auto; }
.post { border-bottom: 1px solid lightgrey; padding: 10px 0; }
.post img { display: block; width: 100%; min-height: 200px; background: #eee; }
.post form { margin-top: 5px; }
</style>
</head>
<body>
<h1>Posts</h1>
{{- if .Loading}}
<p class="loading">Loading...</p>
{{- end}}
{{- range .Items}}
<div class="post" data-post="{{.ID}}">
<p class="post_text">{{.Text}}</p>
{{- if .ImageSrc}}
<img class="post_image" src="{{.ImageSrc}}" alt="" loading="lazy" onerror="this.style.display='none'">
{{- end}}
<form method="post" action="{{.LikeAction}}">
<button class="like" type="submit" data-liked="{{.Liked}}"><span class="like_icon">{{.LikeIcon}}</span> <span class="like_label">{{.LikeLabel}}</span></button>
</form>
</div>
{{- end}}
</body>
</html>
`))

func init() {
	emoji.ReplacePadding = ""
}

type pageData struct {
	Loading bool
	Items   []pageItem
}

type pageItem struct {
	ID         string
	Text       string
	ImageSrc   string
	Liked      bool
	LikeIcon   string
	LikeLabel  string
	LikeAction string
}

type PostListView struct {
	store *PostStore

	mu     sync.RWMutex
	page   []byte
	cancel func()
}

func NewPostListView(store *PostStore) *PostListView {
	v := &PostListView{
		store: store,
	}
	v.render(nil, Idle)
	return v
}

func (v *PostListView) Mount(ctx context.Context) <-chan struct{} {
	cancel := v.store.Subscribe(v.render)
	v.mu.Lock()
	v.cancel = cancel
	v.mu.Unlock()
	return v.store.Load(ctx)
}

func (v *PostListView) Unmount() {
	v.mu.Lock()
	cancel := v.cancel
	v.cancel = nil
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (v *PostListView) ToggleLike(postID string) bool {
	return v.store.ToggleLike(postID)
}

func (v *PostListView) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v.mu.RLock()
	page := v.page
	v.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (v *PostListView) render(posts []Post, state LoadState) {
	page, err := renderPage(posts, state)
	if err != nil {
		log.Println(err)
		return
	}
	v.mu.Lock()
	v.page = page
	v.mu.Unlock()
}

func renderPage(posts []Post, state LoadState) ([]byte, error) {
	data := pageData{
		Loading: state == Idle || state == Loading,
	}
	for _, post := range posts {
		icon, label := likeAffordance(post.Liked)
		item := pageItem{
			ID:         post.ID,
			Text:       strings.TrimSpace(emoji.Sprint(post.Text)),
			Liked:      post.Liked,
			LikeIcon:   icon,
			LikeLabel:  label,
			LikeAction: "/posts/" + url.PathEscape(post.ID) + "/like",
		}
		if post.HasImage() {
			item.ImageSrc = "/images?url=" + url.QueryEscape(post.Image)
		}
		data.Items = append(data.Items, item)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "can't render posts page")
	}
	return buf.Bytes(), nil
}

func likeAffordance(liked bool) (icon, label string) {
	if liked {
		return strings.TrimSpace(emoji.Sprint(":heart:")), "Liked"
	}
	return "\u2661", "Like"
}
