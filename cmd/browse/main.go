// Copyright (c) 2026 Inkshelf. All rights reserved.

// Command browse is a line-oriented terminal client for the catalog API. It
// drives the interactive search state machine: each typed line is a query
// edit, debounced and fanned out exactly as the web client would do it.
//
// Commands:
//
//	<text>      set the search text
//	:pick <v>   select a suggestion value
//	:recent     print the recent-search history
//	:state      print the session state
//	:clear      empty the search box
//	:quit       exit
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/inkshelf/inkshelf/internal/browse"
)

func main() {
	baseURL := flag.String("api", envOr("INKSHELF_API", "http://localhost:8080"), "base URL of the inkshelf API")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	client := &apiClient{
		base:       strings.TrimRight(*baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		out:        os.Stdout,
	}

	session := browse.NewSession(client, log)
	defer session.Stop()

	ctx := context.Background()
	fmt.Println("inkshelf browse — type to search, :quit to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == ":quit":
			return

		case line == ":clear":
			session.Dispatch(ctx, browse.Cleared{})

		case line == ":state":
			state := session.State()
			fmt.Printf("phase=%s query=%q results=%d gen=%d err=%q\n",
				state.Phase, state.Query, state.ResultCount, state.Gen, state.LastErr)

		case line == ":recent":
			client.printRecent(ctx)

		case strings.HasPrefix(line, ":pick "):
			session.Dispatch(ctx, browse.SuggestionPicked{Value: strings.TrimPrefix(line, ":pick ")})

		default:
			session.Dispatch(ctx, browse.TextChanged{Text: line})
		}

		// Leave room for the debounce and the fetches to land before the
		// next prompt; a terminal client has no render loop to repaint on.
		time.Sleep(browse.DebounceDelay + 400*time.Millisecond)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// apiClient implements [browse.Effects] over the HTTP API.
type apiClient struct {
	base       string
	httpClient *http.Client
	out        *os.File
}

// envelope matches the API's success wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type suggestionRow struct {
	Facet   string `json:"facet"`
	Display string `json:"display"`
	Meta    string `json:"meta"`
}

type bookRow struct {
	Title   string `json:"title"`
	PubYear *int   `json:"pub_year"`
}

func (client *apiClient) FetchSuggestions(ctx context.Context, query string) (int, error) {
	var rows []suggestionRow
	if err := client.getJSON(ctx, "/api/v1/suggest?q="+url.QueryEscape(query), &rows); err != nil {
		return 0, err
	}

	for _, row := range rows {
		fmt.Fprintf(client.out, "  [%s] %s", row.Facet, row.Display)
		if row.Meta != "" {
			fmt.Fprintf(client.out, "  (%s)", row.Meta)
		}
		fmt.Fprintln(client.out)
	}
	return len(rows), nil
}

func (client *apiClient) FetchResults(ctx context.Context, query string) (int, error) {
	var rows []bookRow
	if err := client.getJSON(ctx, "/api/v1/books?q="+url.QueryEscape(query), &rows); err != nil {
		return 0, err
	}

	fmt.Fprintf(client.out, "%d result(s) for %q\n", len(rows), query)
	for i, row := range rows {
		if i == 10 {
			fmt.Fprintf(client.out, "  … %d more\n", len(rows)-i)
			break
		}
		if row.PubYear != nil {
			fmt.Fprintf(client.out, "  %s (%d)\n", row.Title, *row.PubYear)
		} else {
			fmt.Fprintf(client.out, "  %s\n", row.Title)
		}
	}
	return len(rows), nil
}

func (client *apiClient) SaveRecent(ctx context.Context, query string) error {
	body := strings.NewReader(fmt.Sprintf(`{"query":%q}`, query))
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.base+"/api/v1/searches/recent", body)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		return fmt.Errorf("save recent: status %d", response.StatusCode)
	}
	return nil
}

func (client *apiClient) LoadRandomShelf(ctx context.Context) error {
	var rows []bookRow
	if err := client.getJSON(ctx, "/api/v1/shelf/random?n=8", &rows); err != nil {
		return err
	}

	fmt.Fprintln(client.out, "from the shelf:")
	for _, row := range rows {
		fmt.Fprintf(client.out, "  %s\n", row.Title)
	}
	return nil
}

func (client *apiClient) printRecent(ctx context.Context) {
	var entries []string
	if err := client.getJSON(ctx, "/api/v1/searches/recent", &entries); err != nil {
		fmt.Fprintf(client.out, "recent searches unavailable: %v\n", err)
		return
	}

	for i, entry := range entries {
		fmt.Fprintf(client.out, "  %d. %s\n", i+1, entry)
	}
	if len(entries) == 0 {
		fmt.Fprintln(client.out, "  (none yet)")
	}
}

// getJSON fetches path and unwraps the response envelope into target.
func (client *apiClient) getJSON(ctx context.Context, path string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.base+path, nil)
	if err != nil {
		return err
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", path, response.StatusCode)
	}

	var wrapped envelope
	if err := json.NewDecoder(response.Body).Decode(&wrapped); err != nil {
		return err
	}
	return json.Unmarshal(wrapped.Data, target)
}
