// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package opensubtitles finds and downloads Russian subtitles for a movie.

Retrieval has three legs, each bounded by its own timeout:

 1. Search: GET /subtitles?query=<title year>&languages=ru
 2. Link:   POST /download {file_id}
 3. Body:   GET <link>

The entry with the highest download_count wins and its first file is used.
*/
package opensubtitles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AliceG32/project-frontend-movies/internal/platform/constants"
)

const (
	headerAPIKey    = "Api-Key"
	headerUserAgent = "User-Agent"
	language        = "ru"

	// defaultMaxBodyBytes caps a downloaded subtitle file.
	defaultMaxBodyBytes = 8 << 20
)

var (
	// ErrNotFound means no subtitle file matched the query.
	ErrNotFound = errors.New("opensubtitles: no subtitles found")

	// ErrTooLarge means the subtitle file exceeded MaxBodyBytes.
	ErrTooLarge = errors.New("opensubtitles: subtitle file too large")
)

// # Wire Types

type searchResponse struct {
	Data []struct {
		Attributes struct {
			Language      string `json:"language"`
			Release       string `json:"release"`
			DownloadCount int    `json:"download_count"`
			Files         []struct {
				FileID   int    `json:"file_id"`
				FileName string `json:"file_name"`
			} `json:"files"`
		} `json:"attributes"`
	} `json:"data"`
	TotalCount int `json:"total_count"`
}

type downloadResponse struct {
	Link string `json:"link"`
}

// Match is the chosen subtitle file before download.
type Match struct {
	FileID   int    `json:"file_id"`
	FileName string `json:"file_name"`
	Language string `json:"language"`
	Release  string `json:"release"`
}

// Subtitle is a downloaded subtitle file.
type Subtitle struct {
	Match
	Content string `json:"content"`
}

// # Client

// Client talks to the OpenSubtitles REST API.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger

	// LegTimeout bounds each of the three legs independently.
	LegTimeout time.Duration

	// MaxBodyBytes caps the downloaded file. Larger files fail with [ErrTooLarge].
	MaxBodyBytes int64
}

// NewClient creates a client. A nil httpClient uses [http.DefaultClient];
// per-leg deadlines come from LegTimeout.
func NewClient(baseURL, apiKey, userAgent string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		userAgent:    userAgent,
		http:         httpClient,
		limiter:      rate.NewLimiter(rate.Limit(constants.GatewayRateLimitRPS), constants.GatewayRateLimitBurst),
		logger:       logger,
		LegTimeout:   constants.SubtitleLegTimeout,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

/*
Find searches for the best match and downloads it.

Parameters:
  - context: context.Context
  - title: string
  - year: int

Returns:
  - *Subtitle: The downloaded file with non-empty content
  - error: ErrNotFound, a timeout or a transport failure
*/
func (client *Client) Find(context context.Context, title string, year int) (*Subtitle, error) {
	if strings.TrimSpace(title) == "" || year <= 0 {
		return nil, ErrNotFound
	}

	match, err := client.Search(context, title+" "+strconv.Itoa(year))
	if err != nil {
		return nil, err
	}

	link, err := client.DownloadLink(context, match.FileID)
	if err != nil {
		return nil, err
	}

	content, err := client.Fetch(context, link)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrNotFound
	}

	return &Subtitle{Match: *match, Content: content}, nil
}

// Search runs the first leg and returns the most downloaded match.
func (client *Client) Search(parent context.Context, query string) (*Match, error) {
	legContext, cancel := context.WithTimeout(parent, client.LegTimeout)
	defer cancel()

	values := url.Values{}
	values.Set("query", query)
	values.Set("languages", language)

	var decoded searchResponse
	if err := client.send(legContext, http.MethodGet, client.baseURL+"/subtitles?"+values.Encode(), nil, &decoded); err != nil {
		return nil, fmt.Errorf("opensubtitles_search_failed: %w", err)
	}

	entries := decoded.Data
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Attributes.DownloadCount > entries[j].Attributes.DownloadCount
	})
	if len(entries) == 0 || len(entries[0].Attributes.Files) == 0 {
		return nil, ErrNotFound
	}

	best := entries[0].Attributes
	return &Match{
		FileID:   best.Files[0].FileID,
		FileName: best.Files[0].FileName,
		Language: best.Language,
		Release:  best.Release,
	}, nil
}

// DownloadLink runs the second leg and resolves a signed download link.
func (client *Client) DownloadLink(parent context.Context, fileID int) (string, error) {
	legContext, cancel := context.WithTimeout(parent, client.LegTimeout)
	defer cancel()

	var decoded downloadResponse
	body := map[string]int{"file_id": fileID}
	if err := client.send(legContext, http.MethodPost, client.baseURL+"/download", body, &decoded); err != nil {
		return "", fmt.Errorf("opensubtitles_download_failed: %w", err)
	}
	if decoded.Link == "" {
		return "", ErrNotFound
	}
	return decoded.Link, nil
}

// Fetch runs the third leg and reads the subtitle file body.
func (client *Client) Fetch(parent context.Context, link string) (string, error) {
	legContext, cancel := context.WithTimeout(parent, client.LegTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(legContext, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("opensubtitles_fetch_failed: %w", err)
	}

	response, err := client.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("opensubtitles_fetch_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("opensubtitles_fetch_failed: status %d", response.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(response.Body, client.MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("opensubtitles_fetch_failed: %w", err)
	}
	if int64(len(content)) > client.MaxBodyBytes {
		return "", fmt.Errorf("opensubtitles_fetch_failed: %w", ErrTooLarge)
	}
	return string(content), nil
}

// send performs one authenticated JSON call and decodes the reply into out.
func (client *Client) send(context context.Context, method, target string, body any, out any) error {
	if err := client.limiter.Wait(context); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(context, method, target, reader)
	if err != nil {
		return err
	}
	request.Header.Set(headerAPIKey, client.apiKey)
	request.Header.Set(headerUserAgent, client.userAgent)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	started := time.Now()
	response, err := client.http.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	client.logger.DebugContext(context, "opensubtitles_call",
		slog.String("method", method),
		slog.Int("status", response.StatusCode),
		slog.Duration("duration", time.Since(started)),
	)

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", response.StatusCode)
	}
	return json.NewDecoder(response.Body).Decode(out)
}
