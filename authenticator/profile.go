package authenticator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// maxProfileBody caps how much of a user-info response is read
const maxProfileBody = 1 << 20

// ProfileFetcher retrieves the raw user profile from a provider user-info endpoint
type ProfileFetcher struct {
	url    string
	client *http.Client
}

// NewProfileFetcher creates a fetcher for the given user-info URL
func NewProfileFetcher(userInfoURL string, client *http.Client) *ProfileFetcher {
	return &ProfileFetcher{url: userInfoURL, client: client}
}

// Fetch performs one authenticated GET against the user-info endpoint
func (f *ProfileFetcher) Fetch(ctx context.Context, accessToken string) (RawProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &ProfileFetchError{Err: err}
	}
	(&oauth2.Token{AccessToken: accessToken}).SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &ProfileFetchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBody))
	if err != nil {
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode, Body: body}
	}

	// Keep numbers as json.Number so large numeric ids survive intact
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var profile RawProfile
	if err := dec.Decode(&profile); err != nil {
		return nil, &ProfileFetchError{
			StatusCode: resp.StatusCode,
			Body:       body,
			Err:        fmt.Errorf("failed to decode profile: %w", err),
		}
	}
	if profile == nil {
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode, Body: body, Err: fmt.Errorf("empty profile")}
	}

	return profile, nil
}
