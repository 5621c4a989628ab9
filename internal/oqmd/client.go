// Package oqmd provides a client for the OQMD REST API, the upstream source
// of composition / formation-energy records.
package oqmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/phasekit/internal/phase"
)

// DefaultBaseURL is the public OQMD API endpoint.
const DefaultBaseURL = "http://oqmd.org/oqmdapi"

// Client queries the OQMD formation-energy endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client against the public OQMD API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query selects formation-energy records. Zero-valued fields are omitted
// from the request.
type Query struct {
	// Composition restricts results to a composition or chemical space,
	// e.g. "Fe2O3" or "Fe-O".
	Composition string

	// Elements restricts results to entries containing all listed elements.
	Elements []string

	// Filter is a raw OQMD filter expression, e.g. "stability=0".
	Filter string

	// Limit and Offset page through results.
	Limit  int
	Offset int
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Composition != "" {
		v.Set("composition", q.Composition)
	}
	if len(q.Elements) > 0 {
		v.Set("element_set", strings.Join(q.Elements, ","))
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// Meta carries the paging information returned alongside a batch.
type Meta struct {
	DataAvailable int  `json:"data_available"`
	DataReturned  int  `json:"data_returned"`
	More          bool `json:"more_data_available"`
}

// Response is one page of formation-energy records.
type Response struct {
	Data []phase.Record `json:"data"`
	Meta Meta           `json:"meta"`
}

// FormationEnergies fetches one page of formation-energy records.
func (c *Client) FormationEnergies(ctx context.Context, q Query) (*Response, error) {
	u := c.baseURL + "/formationenergy?" + q.values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oqmd: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("oqmd: %s returned %s: %s", u, resp.Status, strings.TrimSpace(string(body)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("oqmd: decoding response: %w", err)
	}
	return &out, nil
}

// PhaseSpace fetches every stable and near-hull record in a chemical space
// such as "Fe-Li-O", following pagination until the server reports no more
// data.
func (c *Client) PhaseSpace(ctx context.Context, space string) ([]phase.Record, error) {
	var records []phase.Record
	offset := 0
	for {
		resp, err := c.FormationEnergies(ctx, Query{
			Composition: space,
			Limit:       200,
			Offset:      offset,
		})
		if err != nil {
			return nil, err
		}
		records = append(records, resp.Data...)
		if !resp.Meta.More || len(resp.Data) == 0 {
			return records, nil
		}
		offset += len(resp.Data)
	}
}
