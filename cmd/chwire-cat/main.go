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

// chwire-cat reads a Native-format wire stream from a file or stdin and
// prints its blocks as rows, one line per row. With -inspect it drops
// into a readline REPL over the same stream instead of dumping
// everything at once.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/dc0d/onexit"
	units "github.com/docker/go-units"

	"github.com/launix-de/chwire/block"
	"github.com/launix-de/chwire/codec"
	"github.com/launix-de/chwire/stream"
)

func main() {
	inspect := flag.Bool("inspect", false, "drop into an interactive REPL instead of dumping every row")
	mapAsArray := flag.Bool("map-as-array", false, "decode Map columns as []KV instead of map[any]any")
	flag.Parse()

	var in io.Reader = os.Stdin
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "chwire-cat:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	opts := block.Options{MapAsArray: *mapAsArray}

	if *inspect {
		runInspect(in, opts)
		return
	}

	chunks := chunkReader(in)
	blocks, errs := stream.Decode(context.Background(), chunks, opts)
	var totalBytes uint64
	for b := range blocks {
		for _, row := range block.AsRows(b) {
			fmt.Println(row)
		}
		totalBytes += estimateBlockBytes(b)
	}
	if err := <-errs; err != nil {
		fmt.Fprintln(os.Stderr, "chwire-cat:", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "decoded %s\n", units.HumanSize(float64(totalBytes)))
}

// runInspect is a small readline REPL over the stream: .schema prints
// the most recently decoded block's field list, .next decodes and
// prints the next block, .quit exits.
func runInspect(in io.Reader, opts block.Options) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "chwire> ",
		HistoryFile:       ".chwire-cat-history.tmp",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "chwire-cat:", err)
		os.Exit(1)
	}
	defer l.Close()
	onexit.Register(func() { l.Close() })
	l.CaptureExitSignal()

	chunks := chunkReader(in)
	blocks, errs := stream.Decode(context.Background(), chunks, opts)
	var last block.Block
	haveLast := false

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return
		} else if err != nil {
			return
		}
		switch line {
		case ".quit":
			return
		case ".schema":
			if !haveLast {
				fmt.Println("no block decoded yet; run .next first")
				continue
			}
			for _, f := range last.Fields {
				fmt.Printf("%s %s\n", f.Name, f.Type)
			}
		case ".next":
			b, ok := <-blocks
			if !ok {
				if err := <-errs; err != nil {
					fmt.Println("error:", err)
				} else {
					fmt.Println("end of stream")
				}
				continue
			}
			last, haveLast = b, true
			for _, row := range block.AsRows(b) {
				fmt.Println(row)
			}
		default:
			fmt.Println("commands: .schema .next .quit")
		}
	}
}

// chunkReader feeds in to stream.Decode in fixed-size reads, the same
// chunk shape a socket or file tail would deliver.
func chunkReader(in io.Reader) <-chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		buf := make([]byte, 64*1024)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				out <- chunk
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

// estimateBlockBytes sums each field codec's EstimateSize for b's row
// count, for the human-readable "decoded N" summary printed on exit.
func estimateBlockBytes(b block.Block) uint64 {
	var total uint64
	for _, f := range b.Fields {
		c, err := codec.GetCodec(f.Type)
		if err != nil {
			continue
		}
		total += uint64(c.EstimateSize(b.Rows))
	}
	return total
}
