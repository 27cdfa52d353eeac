package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type Server struct {
	port     int
	endpoint string
	timeout  time.Duration
}

func NewServer(port int, endpoint string, timeout time.Duration) *Server {
	return &Server{
		port:     port,
		endpoint: endpoint,
		timeout:  timeout,
	}
}

func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, view := s.setup(ctx)
	defer view.Unmount()

	log.Printf("started on :%d\n", s.port)
	err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), r)
	if err != nil {
		log.Fatal(err)
	}
}

func (s *Server) setup(ctx context.Context) (*chi.Mux, *PostListView) {
	r := chi.NewRouter()
	s.setupMiddlewares(r)

	store := NewPostStore(NewPostDownloader(s.endpoint, s.timeout))
	go store.Run(ctx)

	view := NewPostListView(store)
	view.Mount(ctx)

	images := NewImageLoader(s.timeout, PostImages(store))
	rssProvider := NewRSSProvider(store, fmt.Sprintf("http://localhost:%d/", s.port))

	r.Mount("/", RouterPosts(view, images, rssProvider))
	return r, view
}

func (s *Server) setupMiddlewares(r *chi.Mux) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
}
