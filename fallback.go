package main

const (
	placeholderImageURL = "https://via.placeholder.com/300"

	fallbackShortText = "Short text with an image."
	fallbackLongText  = "Long text with an image. This post is here to show how a longer body wraps " +
		"across several lines of the list while the picture below keeps its size. " +
		"It goes on for a while so that the layout has something to work with."
	fallbackTextOnly = "This is a post without an image."
)

func fallbackPosts() []Post {
	return []Post{
		NewPost(fallbackShortText, placeholderImageURL),
		NewPost(fallbackLongText, placeholderImageURL),
		NewPost(fallbackTextOnly, ""),
	}
}
