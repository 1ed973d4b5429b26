// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgrest implements the remote store contract over a PostgREST
(Supabase) REST endpoint.

Wire dialect:

  - Reads: GET /rest/v1/<table>?select=*&order=<f>.<dir>&offset=&limit=
  - Exact totals: Prefer: count=exact, parsed from the Content-Range header.
  - Writes: POST/PATCH with Prefer: return=representation, DELETE with eq filters.
  - Procedures: POST /rest/v1/rpc/<fn> with a JSON argument object.

Every request carries the apikey and Authorization: Bearer headers.
*/
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AliceG32/project-frontend-movies/internal/platform/apperr"
	"github.com/AliceG32/project-frontend-movies/internal/platform/database/schema"
	"github.com/AliceG32/project-frontend-movies/internal/store"
)

// # Client

const (
	restPrefix      = "/rest/v1"
	headerPrefer    = "Prefer"
	headerRange     = "Content-Range"
	preferCount     = "count=exact"
	preferReturn    = "return=representation"
	mediaJSON       = "application/json"
	mediaObjectJSON = "application/vnd.pgrst.object+json"

	// codeNoSingleRow is returned with 406 when a singular read matches zero rows.
	codeNoSingleRow = "PGRST116"

	defaultTimeout = 15 * time.Second
)

// SQLSTATE codes surfaced in PostgREST error bodies.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// Client sends PostgREST requests for one project.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client. A nil httpClient uses a client with a 15s timeout.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// NewBackend wires every repository over one client.
func NewBackend(client *Client) store.Backend {
	return store.Backend{
		Movies:    &MovieRepository{client: client},
		Favorites: &FavoriteRepository{client: client},
		Comments:  &CommentRepository{client: client},
		Auth:      &Authenticator{client: client},
		Ping:      client.Ping,
	}
}

// call describes one PostgREST request.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	prefer []string
	accept string
}

// response is the decoded outcome of a call.
type response struct {
	status int
	header http.Header
	body   []byte
}

/*
do sends the call and maps error statuses to [apperr.AppError].

Parameters:
  - context: context.Context
  - request: call

Returns:
  - *response: Status, headers and raw body of a 2xx response
  - error: Transport or mapped PostgREST errors
*/
func (client *Client) do(context context.Context, request call) (*response, error) {
	target := client.baseURL + restPrefix + request.path
	if len(request.query) > 0 {
		target += "?" + request.query.Encode()
	}

	var body io.Reader
	if request.body != nil {
		payload, err := json.Marshal(request.body)
		if err != nil {
			return nil, fmt.Errorf("postgrest_encode_failed: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpRequest, err := http.NewRequestWithContext(context, request.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("postgrest_request_failed: %w", err)
	}

	httpRequest.Header.Set("apikey", client.apiKey)
	httpRequest.Header.Set("Authorization", "Bearer "+client.apiKey)
	httpRequest.Header.Set("Accept", mediaJSON)
	if request.accept != "" {
		httpRequest.Header.Set("Accept", request.accept)
	}
	if request.body != nil {
		httpRequest.Header.Set("Content-Type", mediaJSON)
	}
	if len(request.prefer) > 0 {
		httpRequest.Header.Set(headerPrefer, strings.Join(request.prefer, ","))
	}

	httpResponse, err := client.http.Do(httpRequest)
	if err != nil {
		return nil, apperr.Remote(err.Error(), fmt.Errorf("postgrest_%s_%s: %w", strings.ToLower(request.method), request.path, err))
	}
	defer httpResponse.Body.Close()

	raw, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, apperr.Remote(err.Error(), fmt.Errorf("postgrest_read_failed: %w", err))
	}

	if httpResponse.StatusCode >= http.StatusBadRequest {
		return nil, mapError(httpResponse.StatusCode, raw, request.path)
	}

	return &response{status: httpResponse.StatusCode, header: httpResponse.Header, body: raw}, nil
}

// decode unmarshals a successful response body into out.
func (response *response) decode(out any) error {
	if len(response.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(response.body, out); err != nil {
		return apperr.Remote("malformed store response", fmt.Errorf("postgrest_decode_failed: %w", err))
	}
	return nil
}

// total parses the exact count from a Content-Range header such as "0-9/42" or "*/0".
func (response *response) total() (int, error) {
	contentRange := response.header.Get(headerRange)
	slash := strings.LastIndexByte(contentRange, '/')
	if slash < 0 {
		return 0, apperr.Remote("missing result count", fmt.Errorf("postgrest_content_range_invalid: %q", contentRange))
	}

	total, err := strconv.Atoi(contentRange[slash+1:])
	if err != nil {
		return 0, apperr.Remote("missing result count", fmt.Errorf("postgrest_content_range_invalid: %q: %w", contentRange, err))
	}
	return total, nil
}

// # Error Mapping

// apiError is the PostgREST error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func mapError(status int, raw []byte, path string) error {
	var body apiError
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(string(raw))
		if body.Message == "" {
			body.Message = http.StatusText(status)
		}
	}

	cause := fmt.Errorf("postgrest_status_%d %s: %s", status, path, body.Message)

	switch {
	case body.Code == codeNoSingleRow || status == http.StatusNotFound:
		notFound := apperr.NotFound("Resource")
		notFound.Cause = cause
		return notFound
	case body.Code == uniqueViolation || status == http.StatusConflict:
		conflict := apperr.Conflict("Record already exists")
		conflict.Cause = cause
		return conflict
	case body.Code == foreignKeyViolation || body.Code == checkViolation:
		invalid := apperr.Unprocessable(body.Message)
		invalid.Cause = cause
		return invalid
	}

	return apperr.Remote(body.Message, cause)
}

// notFoundAs renames a generic NotFound for a specific resource.
func notFoundAs(err error, resource string) error {
	var appError *apperr.AppError
	if errors.As(err, &appError) && appError.Code == "NOT_FOUND" {
		renamed := apperr.NotFound(resource)
		renamed.Cause = appError.Cause
		return renamed
	}
	return err
}

// # Filters

func tablePath(table string) string {
	return "/" + table
}

func rpcPath(function string) string {
	return "/rpc/" + function
}

func eq(value string) string {
	return "eq." + value
}

// in renders an in.(...) list. Values are ids and never contain commas.
func in(values []string) string {
	return "in.(" + strings.Join(values, ",") + ")"
}

// ilike renders a substring match. PostgREST uses * as the wildcard.
func ilike(text string) string {
	cleaned := strings.NewReplacer("*", "", ",", " ", "(", " ", ")", " ").Replace(strings.TrimSpace(text))
	return "ilike.*" + cleaned + "*"
}

func orderValue(order store.Order) string {
	direction := "desc"
	if order.Ascending() {
		direction = "asc"
	}
	return fmt.Sprintf("%s.%s,%s.asc", store.ParseSortField(string(order.Field)), direction, schema.Movies.ID)
}

func pageValues(query url.Values, page store.Page) {
	query.Set("offset", strconv.Itoa(page.Offset))
	query.Set("limit", strconv.Itoa(page.Limit))
}

// # Health

// Ping issues a minimal read against the movies table.
func (client *Client) Ping(context context.Context) error {
	query := url.Values{}
	query.Set("select", schema.Movies.ID)
	query.Set("limit", "1")
	_, err := client.do(context, call{method: http.MethodGet, path: tablePath(schema.Movies.Table), query: query})
	return err
}
