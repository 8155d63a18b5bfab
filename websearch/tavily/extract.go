package tavily

import (
	"context"

	"github.com/vspruyt/infogen/websearch"
)

// extractRequest is the wire form of a Tavily extract call.
type extractRequest struct {
	URLs []string `json:"urls"`
}

type extractResult struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
}

type failedResult struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

type extractResponse struct {
	Results       []extractResult `json:"results"`
	FailedResults []failedResult  `json:"failed_results"`
}

// Extract fetches raw page content for the URLs in one batch call.
// URLs the provider could not extract come back in the Failed list.
func (c *Client) Extract(ctx context.Context, urls []string) (*websearch.ExtractResponse, error) {
	if len(urls) == 0 {
		return &websearch.ExtractResponse{}, nil
	}

	var resp extractResponse
	if err := c.postJSON(ctx, "/extract", &extractRequest{URLs: urls}, &resp); err != nil {
		return nil, err
	}

	out := &websearch.ExtractResponse{
		Results: make([]websearch.ExtractedPage, 0, len(resp.Results)),
		Failed:  make([]websearch.FailedExtraction, 0, len(resp.FailedResults)),
	}
	for _, r := range resp.Results {
		out.Results = append(out.Results, websearch.ExtractedPage{
			URL:        r.URL,
			RawContent: r.RawContent,
		})
	}
	for _, f := range resp.FailedResults {
		out.Failed = append(out.Failed, websearch.FailedExtraction{
			URL:    f.URL,
			Reason: f.Error,
		})
	}

	c.logger.Debug("extract completed", "requested", len(urls), "extracted", len(out.Results), "failed", len(out.Failed))
	return out, nil
}
