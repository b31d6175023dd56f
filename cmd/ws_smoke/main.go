package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// Dials the live dashboard of a running server and prints the frames it gets.
// Get a token with create_test_user.
func main() {
	token := flag.String("token", os.Getenv("TOKEN"), "bearer token")
	frames := flag.Int("frames", 1, "frames to wait for")
	wait := flag.Duration("wait", 30*time.Second, "time to wait per frame")
	flag.Parse()

	if *token == "" {
		log.Fatal("token required (-token or TOKEN)")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	u := url.URL{Scheme: "ws", Host: "127.0.0.1:" + port, Path: "/ws/dashboard", RawQuery: "token=" + url.QueryEscape(*token)}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("dial: %v (status %d)", err, resp.StatusCode)
		}
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	for i := 0; i < *frames; i++ {
		conn.SetReadDeadline(time.Now().Add(*wait))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read frame %d: %v", i+1, err)
		}
		fmt.Println(string(msg))
	}
}
