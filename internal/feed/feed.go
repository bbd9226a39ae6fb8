// Package feed fetches the read-only "update" announcements from the
// remote document store.
//
// The fetch is one-shot and fire-and-forget: it runs once at startup, is
// never retried, and a failure simply leaves the update list empty. The
// remote documents are loosely typed - string fields may arrive wrapped in
// literal quote characters, and seen flags may arrive as the strings "true"
// or "false" - so decoding normalizes both before the updates reach the
// store.
package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/planify/planify/internal/tracker"
)

// defaultTimeout bounds the one-shot feed request so a hung remote cannot
// stall the fetch goroutine indefinitely.
const defaultTimeout = 15 * time.Second

// Fetcher retrieves update documents over HTTP.
type Fetcher struct {
	client *http.Client
	url    string
	log    *zap.Logger
}

// NewFetcher creates a Fetcher for the given feed URL. A nil client gets a
// default with a request timeout; a nil logger discards logs.
func NewFetcher(url string, client *http.Client, log *zap.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{client: client, url: url, log: log}
}

// document is the wire shape of one update. Seen is decoded as json.RawMessage
// because the remote store delivers it as a bool, a quoted "true"/"false",
// or not at all.
type document struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Seen     json.RawMessage `json:"seen"`
	UpdateID string          `json:"updateId"`
}

// response accepts either a bare JSON array of documents or an object
// wrapping them in a "documents" field.
type response struct {
	Documents []document `json:"documents"`
}

// Fetch retrieves and normalizes the update feed, then merges it into the
// store with MergeUpdates so locally seen updates stay seen. Failures are
// logged and leave the stored updates untouched; Fetch never returns an
// error because a dead feed is not a fault condition.
func (f *Fetcher) Fetch(store *tracker.Store) {
	updates, err := f.fetch()
	if err != nil {
		f.log.Warn("update feed fetch failed", zap.Error(err))
		return
	}
	store.MergeUpdates(updates)
	f.log.Info("update feed refreshed", zap.Int("updates", len(updates)))
}

func (f *Fetcher) fetch() ([]tracker.Update, error) {
	resp, err := f.client.Get(f.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch update feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read update feed body: %w", err)
	}

	docs, err := decodeDocuments(body)
	if err != nil {
		return nil, err
	}

	updates := make([]tracker.Update, 0, len(docs))
	for _, d := range docs {
		updates = append(updates, tracker.Update{
			ID:       unwrapQuotes(d.ID),
			Title:    unwrapQuotes(d.Title),
			Message:  unwrapQuotes(d.Message),
			Seen:     coerceSeen(d.Seen),
			UpdateID: unwrapQuotes(d.UpdateID),
		})
	}
	return updates, nil
}

func decodeDocuments(body []byte) ([]document, error) {
	var docs []document
	if err := json.Unmarshal(body, &docs); err == nil {
		return docs, nil
	}

	var wrapped response
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode update feed: %w", err)
	}
	return wrapped.Documents, nil
}

// unwrapQuotes strips one pair of literal quote characters wrapping a
// string value, a quirk of how the feed documents are authored.
func unwrapQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// coerceSeen interprets the seen field, which may arrive as a JSON bool or
// as the literal strings "true"/"false". Anything unrecognized is unseen.
func coerceSeen(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}

	return false
}
