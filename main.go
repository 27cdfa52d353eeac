package main

import (
	"flag"
	"time"
)

func main() {
	var (
		port     int
		endpoint string
		timeout  time.Duration
	)

	flag.IntVar(&port, "port", 9001, "tcp port to listen")
	flag.StringVar(&endpoint, "endpoint", postsURL, "url of the posts JSON endpoint")
	flag.DurationVar(&timeout, "timeout", defaultTimeout, "timeout of outbound http requests")
	flag.Parse()

	server := NewServer(port, endpoint, timeout)
	server.Start()
}
