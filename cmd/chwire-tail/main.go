/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// chwire-tail watches a directory for newly-written *.chwire files and
// streams each through the decoder as it grows, printing rows as they
// arrive. With -ws it instead pulls chunks from a websocket connection.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"

	"github.com/launix-de/chwire/block"
	"github.com/launix-de/chwire/stream"
)

func main() {
	wsURL := flag.String("ws", "", "websocket URL to pull chunks from instead of watching a directory")
	mapAsArray := flag.Bool("map-as-array", false, "decode Map columns as []KV instead of map[any]any")
	flag.Parse()

	opts := block.Options{MapAsArray: *mapAsArray}

	if *wsURL != "" {
		if err := tailWebsocket(*wsURL, opts); err != nil {
			fmt.Fprintln(os.Stderr, "chwire-tail:", err)
			os.Exit(1)
		}
		return
	}

	dir := flag.Arg(0)
	if dir == "" {
		dir = "."
	}
	if err := tailDir(dir, opts); err != nil {
		fmt.Fprintln(os.Stderr, "chwire-tail:", err)
		os.Exit(1)
	}
}

// tailDir watches dir for *.chwire files and streams each as it is
// written, one goroutine per file, following fsnotify's own recommended
// watcher loop for file-arrival notification.
func tailDir(dir string, opts block.Options) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}

	seen := map[string]bool{}
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".chwire") {
				continue
			}
			if seen[ev.Name] {
				continue
			}
			seen[ev.Name] = true
			go tailFile(ev.Name, opts)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "chwire-tail:", err)
		}
	}
}

// tailFile polls path for growth and feeds the new bytes into
// stream.Decode, printing rows as whole blocks complete.
func tailFile(path string, opts block.Options) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chwire-tail:", filepath.Base(path), err)
		return
	}
	defer f.Close()

	chunks := make(chan []byte)
	blocks, errs := stream.Decode(context.Background(), chunks, opts)

	go func() {
		defer close(chunks)
		buf := make([]byte, 64*1024)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				chunks <- chunk
			}
			if err == io.EOF {
				time.Sleep(200 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
		}
	}()

	for b := range blocks {
		for _, row := range block.AsRows(b) {
			fmt.Printf("%s: %v\n", filepath.Base(path), row)
		}
	}
	if err := <-errs; err != nil {
		fmt.Fprintln(os.Stderr, "chwire-tail:", filepath.Base(path), err)
	}
}

// tailWebsocket pulls binary frames from a websocket server and feeds
// them into stream.Decode as chunks, one chunk per message frame.
func tailWebsocket(url string, opts block.Options) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, http.Header{})
	if err != nil {
		return err
	}
	defer conn.Close()

	chunks := make(chan []byte)
	blocks, errs := stream.Decode(context.Background(), chunks, opts)

	go func() {
		defer close(chunks)
		for {
			messageType, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if messageType != websocket.BinaryMessage {
				continue
			}
			chunks <- msg
		}
	}()

	for b := range blocks {
		for _, row := range block.AsRows(b) {
			fmt.Println(row)
		}
	}
	return <-errs
}
