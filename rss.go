package main

import (
	"mime"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/feeds"
	"github.com/kyokomi/emoji"
	"github.com/pkg/errors"
)

type RSSProvider struct {
	store *PostStore
	link  string
}

func NewRSSProvider(store *PostStore, link string) *RSSProvider {
	return &RSSProvider{
		store: store,
		link:  link,
	}
}

func (p *RSSProvider) Feed() (*feeds.Feed, error) {
	feed := &feeds.Feed{
		Title:   "Posts",
		Link:    &feeds.Link{Href: p.link},
		Id:      "postfeed",
		Created: time.Now(),
	}

	for _, post := range p.store.Posts() {
		title, err := plainText(post.Text)
		if err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(title) > 50 {
			words := strings.Fields(title)
			if len(words) > 15 {
				words = words[:15]
			}
			title = strings.Join(words, " ")
		}

		description := strings.TrimSpace(emoji.Sprint(post.Text))
		if post.Liked {
			description += " " + strings.TrimSpace(emoji.Sprint(":heart:"))
		}

		item := &feeds.Item{
			Title:       title,
			Link:        &feeds.Link{Href: p.link},
			Id:          post.ID,
			Description: description,
		}
		if post.HasImage() {
			item.Enclosure = &feeds.Enclosure{
				Url:    post.Image,
				Length: "0",
				Type:   imageType(post.Image),
			}
		}
		feed.Items = append(feed.Items, item)
	}

	return feed, nil
}

func plainText(text string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", errors.Wrap(err, "can't parse post text")
	}
	return strings.Join(strings.Fields(emoji.Sprint(doc.Text())), " "), nil
}

func imageType(imageURL string) string {
	ext := path.Ext(imageURL)
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
