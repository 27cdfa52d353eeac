package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi"
)

func RouterPosts(view *PostListView, images *ImageLoader, provider *RSSProvider) http.Handler {
	router := &routerPosts{
		view:     view,
		provider: provider,
	}
	r := chi.NewRouter()
	r.Get("/", view.ServeHTTP)
	r.Post("/posts/{postID}/like", router.toggleLike)
	r.Get("/images", images.ServeHTTP)
	r.Get("/rss", router.postsRSS)
	return r
}

type routerPosts struct {
	view     *PostListView
	provider *RSSProvider
}

func (rp *routerPosts) toggleLike(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if !rp.view.ToggleLike(postID) {
		log.Printf("can't toggle like, post %q not found", postID)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (rp *routerPosts) postsRSS(w http.ResponseWriter, r *http.Request) {
	feed, err := rp.provider.Feed()
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}

	rss, err := feed.ToRss()
	if err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write([]byte(rss))
}
