// Command bulkload replays a snapshot file against a running submit endpoint,
// one record at a time. Useful for seeding a fresh deployment from a backup.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/okian/podium/internal/adapters/storage/codec"
)

// Default configuration constants.
const (
	defaultURL     = "http://localhost:8001/api/leaderboard/submit"
	defaultDelay   = 150 * time.Millisecond
	defaultTimeout = 15 * time.Second
)

type submitPayload struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Avatar string  `json:"avatar"`
}

func main() {
	var (
		url     = flag.String("url", defaultURL, "Submit endpoint URL")
		file    = flag.String("file", "", "Snapshot file to replay (wrapped or bare array shape)")
		delay   = flag.Duration("delay", defaultDelay, "Pause between submissions")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: bulkload -file <snapshot.json> [-url <submit-url>]")
		os.Exit(2)
	}

	b, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *file, err)
		os.Exit(2)
	}
	records, stats, err := codec.Decode(b)
	if err != nil || stats.Unrecognized {
		fmt.Fprintf(os.Stderr, "%s is not a snapshot document\n", *file)
		os.Exit(2)
	}
	if stats.Dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: skipped %d malformed entries\n", stats.Dropped)
	}

	client := &http.Client{Timeout: *timeout}
	ok := 0
	fmt.Printf("Submitting %d records to %s\n", len(records), *url)
	for i, rec := range records {
		payload, err := json.Marshal(submitPayload{
			UserID: rec.UserID,
			Name:   rec.Name,
			Score:  rec.Score,
			Avatar: rec.Avatar,
		})
		if err != nil {
			fmt.Printf("[%d/%d] FAIL %s: %v\n", i+1, len(records), rec.Name, err)
			continue
		}
		resp, err := client.Post(*url, "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Printf("[%d/%d] FAIL %s: %v\n", i+1, len(records), rec.Name, err)
		} else {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				fmt.Printf("[%d/%d] OK %s: status %d\n", i+1, len(records), rec.Name, resp.StatusCode)
				ok++
			} else {
				fmt.Printf("[%d/%d] FAIL %s: status %d\n", i+1, len(records), rec.Name, resp.StatusCode)
			}
		}
		time.Sleep(*delay)
	}
	fmt.Printf("Done. success=%d, failed=%d\n", ok, len(records)-ok)
	if ok == 0 {
		os.Exit(1)
	}
}
