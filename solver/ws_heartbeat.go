package main

import (
	"time"

	"github.com/gorilla/websocket"
)

const defaultWSPingInterval = 30 * time.Second

// writeWSWithHeartbeat owns a websocket connection's write side: it
// forwards whatever the hub enqueues on send, and pings the client after
// WSPingInterval of silence so idle connections do not time out on a
// proxy in between.
func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	interval := defaultWSPingInterval
	if ms := GetConfig().WSPingInterval; ms > 0 {
		interval = time.Duration(ms) * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
