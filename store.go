package main

import (
	"context"
	"log"
)

type LoadState int

const (
	Idle LoadState = iota
	Loading
	Loaded
	FallenBack
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case FallenBack:
		return "fallen back"
	}
	return "unknown"
}

type PostLoader interface {
	Download(ctx context.Context) ([]Post, error)
}

// Observer receives a copy of the sequence. It is always called from the
// store loop and must not call back into the store synchronously.
type Observer func(posts []Post, state LoadState)

type observerEntry struct {
	id       int
	observer Observer
}

type PostStore struct {
	loader  PostLoader
	actions chan func()
	done    chan struct{}

	posts          []Post
	state          LoadState
	observers      []observerEntry
	nextObserverID int
}

func NewPostStore(loader PostLoader) *PostStore {
	return &PostStore{
		loader:  loader,
		actions: make(chan func()),
		done:    make(chan struct{}),
	}
}

// Run executes store actions one at a time until ctx is done. It must be
// called exactly once.
func (s *PostStore) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case action := <-s.actions:
			action()
		}
	}
}

// Load replaces the sequence with freshly downloaded posts, or with the
// fallback posts when they can't be downloaded. The returned channel is
// closed once the attempt has settled.
func (s *PostStore) Load(ctx context.Context) <-chan struct{} {
	settled := make(chan struct{})
	go func() {
		defer close(settled)

		if !s.do(func() { s.setState(Loading) }) {
			return
		}

		posts, err := s.loader.Download(ctx)
		state := Loaded
		if err != nil {
			log.Printf("can't load posts, falling back: %v", err)
			posts = fallbackPosts()
			state = FallenBack
		}

		if !s.do(func() { s.publish(posts, state) }) {
			log.Printf("store is stopped, dropping %d loaded posts", len(posts))
		}
	}()
	return settled
}

func (s *PostStore) ToggleLike(id string) bool {
	var found bool
	s.do(func() {
		for i := range s.posts {
			if s.posts[i].ID == id {
				s.posts[i].Liked = !s.posts[i].Liked
				found = true
				s.notify()
				return
			}
		}
	})
	return found
}

func (s *PostStore) Posts() []Post {
	var posts []Post
	s.do(func() { posts = s.snapshot() })
	return posts
}

func (s *PostStore) State() LoadState {
	var state LoadState
	s.do(func() { state = s.state })
	return state
}

func (s *PostStore) Subscribe(observer Observer) (cancel func()) {
	var id int
	s.do(func() {
		s.nextObserverID++
		id = s.nextObserverID
		s.observers = append(s.observers, observerEntry{id: id, observer: observer})
	})
	return func() {
		s.do(func() {
			for i, entry := range s.observers {
				if entry.id == id {
					s.observers = append(s.observers[:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *PostStore) do(action func()) bool {
	finished := make(chan struct{})
	select {
	case s.actions <- func() {
		defer close(finished)
		action()
	}:
	case <-s.done:
		return false
	}
	<-finished
	return true
}

func (s *PostStore) setState(state LoadState) {
	s.state = state
	s.notify()
}

func (s *PostStore) publish(posts []Post, state LoadState) {
	s.posts = posts
	s.state = state
	s.notify()
}

func (s *PostStore) notify() {
	for _, entry := range s.observers {
		entry.observer(s.snapshot(), s.state)
	}
}

func (s *PostStore) snapshot() []Post {
	posts := make([]Post, len(s.posts))
	copy(posts, s.posts)
	return posts
}
