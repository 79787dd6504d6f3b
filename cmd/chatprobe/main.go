// Package main provides a probe that drives the API and relay the way a
// frontend does: authenticate, open the socket, send a message and watch
// the server-confirmed envelope invalidate the local cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"verser/internal/client"
)

func main() {
	host := flag.String("host", "localhost:8480", "API server host")
	email := flag.String("email", "", "User email")
	password := flag.String("password", "", "User password")
	conversation := flag.Uint("conversation", 1, "Conversation to post into")
	message := flag.String("message", "probe message", "Message content")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cache := client.NewCache()
	api := client.NewAPI("http://"+*host, cache)

	var auth struct {
		Token string `json:"token"`
	}
	if err := api.Post(ctx, "/api/auth/login", map[string]string{
		"email":    *email,
		"password": *password,
	}, &auth); err != nil {
		log.Fatalf("login failed: %v", err)
	}
	api.SetToken(auth.Token)
	log.Println("logged in")

	sock := client.NewSocket()
	sock.OnEnvelope = func(envType string, raw []byte) {
		cache.ApplyEnvelope(envType, raw)
		log.Printf("envelope: %s (%d bytes)", envType, len(raw))
	}
	if err := sock.Dial(ctx, fmt.Sprintf("ws://%s/api/ws", *host), nil); err != nil {
		log.Fatalf("socket dial failed: %v", err)
	}
	defer func() { _ = sock.Close() }()
	log.Printf("socket state: %s", sock.State())

	// Prime the message-list cache, then mutate through the API.
	messagesPath := fmt.Sprintf("/api/conversations/%d/messages", *conversation)
	var history struct {
		Messages []struct {
			ID      uint   `json:"id"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := api.Get(ctx, messagesPath, &history); err != nil {
		log.Fatalf("fetching history failed: %v", err)
	}
	log.Printf("history: %d messages", len(history.Messages))

	var sent struct {
		ID uint `json:"id"`
	}
	if err := api.Post(ctx, messagesPath, map[string]string{
		"content": *message,
	}, &sent); err != nil {
		log.Fatalf("send failed: %v", err)
	}
	log.Printf("sent message %d", sent.ID)

	// The relay should hand back the server-confirmed new_message shortly.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			log.Println("no new_message envelope observed (is the relay wired to Redis?)")
			return
		case <-time.After(100 * time.Millisecond):
		}
		if typ, _ := sock.Last(); typ == "new_message" {
			break
		}
	}

	if err := api.Get(ctx, messagesPath, &history); err != nil {
		log.Fatalf("refetching history failed: %v", err)
	}
	log.Printf("history after send: %d messages", len(history.Messages))
}
