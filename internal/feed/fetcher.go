package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"eventboard/internal/entity"
)

// HTTPFetcher loads subsequent listing pages from the listing endpoint.
// It re-requests the same URL with only the paged parameter changed, so a
// fetched page is exactly what a full page load at that URL would show.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
	params  url.Values
}

func NewHTTPFetcher(client *http.Client, baseURL string, params url.Values) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if params == nil {
		params = url.Values{}
	}
	return &HTTPFetcher{
		client:  client,
		baseURL: baseURL,
		params:  params,
	}
}

func (f *HTTPFetcher) FetchPage(ctx context.Context, page int) ([]entity.EventView, error) {
	params := url.Values{}
	for key, values := range f.params {
		params[key] = values
	}
	params.Set("paged", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing endpoint returned status %d", resp.StatusCode)
	}

	var result entity.ListingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode listing page: %w", err)
	}

	return result.Events, nil
}
