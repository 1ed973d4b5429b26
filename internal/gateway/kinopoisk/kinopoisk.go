// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package kinopoisk is a client for the unofficial Kinopoisk keyword search.

It only implements the search-by-keyword endpoint used to enrich new movie
drafts. Responses are decoded leniently because the upstream API mixes
strings, numbers and "null" for the same fields.
*/
package kinopoisk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
)

const (
	headerAPIKey   = "X-API-KEY"
	defaultTimeout = 15 * time.Second
)

// # Wire Types

// Text is a scalar the API may send as a string, a number or null.
type Text string

// UnmarshalJSON accepts strings, numbers and null.
func (text *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*text = ""
	case len(data) > 0 && data[0] == '"':
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*text = Text(value)
	default:
		var number json.Number
		if err := json.Unmarshal(data, &number); err != nil {
			return fmt.Errorf("kinopoisk: unexpected scalar %s", data)
		}
		*text = Text(number.String())
	}
	return nil
}

// String returns the raw value.
func (text Text) String() string {
	return string(text)
}

// Country is one production country tag.
type Country struct {
	Country string `json:"country"`
}

// Genre is one genre tag.
type Genre struct {
	Genre string `json:"genre"`
}

// Candidate is one search result. It is never persisted.
type Candidate struct {
	ExternalID      int       `json:"externalId"`
	NameRu          string    `json:"nameRu"`
	NameEn          string    `json:"nameEn"`
	Year            Text      `json:"year"`
	FilmLength      Text      `json:"filmLength"`
	Description     string    `json:"description"`
	Countries       []Country `json:"countries"`
	Genres          []Genre   `json:"genres"`
	Rating          Text      `json:"rating"`
	RatingVoteCount Text      `json:"ratingVoteCount"`
}

// UnmarshalJSON reads the external id from kinopoiskId, filmId or externalId.
func (candidate *Candidate) UnmarshalJSON(data []byte) error {
	type plain Candidate
	var wire struct {
		plain
		KinopoiskID int `json:"kinopoiskId"`
		FilmID      int `json:"filmId"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*candidate = Candidate(wire.plain)
	switch {
	case wire.KinopoiskID != 0:
		candidate.ExternalID = wire.KinopoiskID
	case wire.FilmID != 0:
		candidate.ExternalID = wire.FilmID
	}
	return nil
}

// Title returns the Russian name, or the English one when absent.
func (candidate Candidate) Title() string {
	if candidate.NameRu != "" {
		return candidate.NameRu
	}
	return candidate.NameEn
}

type searchResponse struct {
	Films []Candidate `json:"films"`
}

// # Client

// Client performs keyword searches. Outbound calls are throttled.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewClient creates a client for the search-by-keyword endpoint.
// A nil httpClient uses a client with a 15s timeout.
func NewClient(endpoint, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     httpClient,
		limiter:  rate.NewLimiter(rate.Limit(constants.GatewayRateLimitRPS), constants.GatewayRateLimitBurst),
		logger:   logger,
	}
}

/*
Search returns every candidate matching keyword. An empty result is not an error.

Parameters:
  - context: context.Context
  - keyword: string (Title typed by the user)

Returns:
  - []Candidate: Candidates in upstream order
  - error: apperr.Remote with the upstream status on failure
*/
func (client *Client) Search(context context.Context, keyword string) ([]Candidate, error) {
	if err := client.limiter.Wait(context); err != nil {
		return nil, apperr.Remote(err.Error(), fmt.Errorf("kinopoisk_throttle_failed: %w", err))
	}

	target, err := url.Parse(client.endpoint)
	if err != nil {
		return nil, fmt.Errorf("kinopoisk_endpoint_invalid: %w", err)
	}
	query := target.Query()
	query.Set("keyword", strings.TrimSpace(keyword))
	target.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(context, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("kinopoisk_request_failed: %w", err)
	}
	request.Header.Set(headerAPIKey, client.apiKey)
	request.Header.Set("Content-Type", "application/json")

	started := time.Now()
	response, err := client.http.Do(request)
	if err != nil {
		return nil, apperr.Remote(err.Error(), fmt.Errorf("kinopoisk_search_failed: %w", err))
	}
	defer response.Body.Close()

	client.logger.DebugContext(context, "kinopoisk_search",
		slog.String("keyword", keyword),
		slog.Int("status", response.StatusCode),
		slog.Duration("duration", time.Since(started)),
	)

	if response.StatusCode != http.StatusOK {
		message := "Kinopoisk API error: " + strconv.Itoa(response.StatusCode) + " " + http.StatusText(response.StatusCode)
		return nil, apperr.Remote(message, fmt.Errorf("kinopoisk_status_%d", response.StatusCode))
	}

	var decoded searchResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, apperr.Remote("malformed Kinopoisk response", fmt.Errorf("kinopoisk_decode_failed: %w", err))
	}

	if decoded.Films == nil {
		return []Candidate{}, nil
	}
	return decoded.Films, nil
}
