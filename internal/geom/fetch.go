package geom

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

// DefaultTopologyURL serves the Natural Earth 110m countries as TopoJSON.
const DefaultTopologyURL = "https://cdn.jsdelivr.net/npm/world-atlas@2/countries-110m.json"

// Source supplies a topology document.
type Source interface {
	Load(ctx context.Context) (*Topology, error)
}

// HTTPSource fetches the document with a GET request. A nil Client means
// http.DefaultClient, so timeouts are whatever the client enforces.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Load(ctx context.Context) (*Topology, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building topology request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching topology: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("topology returned status %d", resp.StatusCode)
	}
	return Parse(resp.Body)
}

// FileSource reads the document from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) (*Topology, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening topology: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
