package tavily

import (
	"context"

	"github.com/vspruyt/infogen/core"
	"github.com/vspruyt/infogen/websearch"
)

// searchRequest is the wire form of a Tavily search call.
type searchRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
	TimeRange      string   `json:"time_range,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

type searchResult struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Search runs a web search, best results first.
func (c *Client) Search(ctx context.Context, req *websearch.SearchRequest) ([]websearch.Result, error) {
	payload := searchRequest{
		Query:          req.Query,
		SearchDepth:    string(req.Depth),
		MaxResults:     req.MaxResults,
		ExcludeDomains: req.ExcludeDomains,
	}
	// The API treats an absent time_range as unrestricted; "none" is not a
	// recognized value.
	if req.TimeRange != core.TimeRangeNone {
		payload.TimeRange = string(req.TimeRange)
	}

	var resp searchResponse
	if err := c.postJSON(ctx, "/search", &payload, &resp); err != nil {
		return nil, err
	}

	results := make([]websearch.Result, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, websearch.Result{
			Title: r.Title,
			URL:   r.URL,
			Score: r.Score,
		})
	}

	c.logger.Debug("search completed", "query", req.Query, "results", len(results))
	return results, nil
}
