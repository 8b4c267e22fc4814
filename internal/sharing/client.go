package sharing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// Share is a top-level shared dataset namespace.
type Share struct {
	Name string `json:"name"`
}

// Schema is a logical grouping of tables within a share.
type Schema struct {
	Name  string `json:"name"`
	Share string `json:"share"`
}

// Table is a shared Delta table.
type Table struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
	Share  string `json:"share"`
}

// Metadata groups all visible tables by share and schema, mirroring the
// response shape of the metadata endpoint: {share: {schema: [table, ...]}}.
type Metadata map[string]map[string][]string

// DataFile is one presigned parquet file returned by a table query.
type DataFile struct {
	URL  string `json:"url"`
	ID   string `json:"id"`
	Size int64  `json:"size"`
}

// Client talks to one Delta Sharing server on behalf of one profile.
type Client struct {
	profile    *Profile
	httpClient *http.Client
}

// NewClient creates a Client for the given profile.
func NewClient(profile *Profile) *Client {
	return &Client{
		profile:    profile,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type listResponse[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// ListShares returns all shares visible to the profile.
func (c *Client) ListShares(ctx context.Context) ([]Share, error) {
	return listAll[Share](ctx, c, "/shares")
}

// ListSchemas returns the schemas within a share.
func (c *Client) ListSchemas(ctx context.Context, share string) ([]Schema, error) {
	return listAll[Schema](ctx, c, fmt.Sprintf("/shares/%s/schemas", url.PathEscape(share)))
}

// ListTables returns the tables within a schema.
func (c *Client) ListTables(ctx context.Context, share, schema string) ([]Table, error) {
	return listAll[Table](ctx, c, fmt.Sprintf("/shares/%s/schemas/%s/tables",
		url.PathEscape(share), url.PathEscape(schema)))
}

// ListAllTables returns every table in a share across all schemas.
func (c *Client) ListAllTables(ctx context.Context, share string) ([]Table, error) {
	return listAll[Table](ctx, c, fmt.Sprintf("/shares/%s/all-tables", url.PathEscape(share)))
}

// ListMetadata walks every share and returns the grouped share → schema →
// tables view used by the metadata endpoint. Table lists are sorted so the
// response is stable.
func (c *Client) ListMetadata(ctx context.Context) (Metadata, error) {
	shares, err := c.ListShares(ctx)
	if err != nil {
		return nil, err
	}

	metadata := make(Metadata)
	for _, share := range shares {
		tables, err := c.ListAllTables(ctx, share.Name)
		if err != nil {
			return nil, err
		}
		schemas := make(map[string][]string)
		for _, table := range tables {
			schemas[table.Schema] = append(schemas[table.Schema], table.Name)
		}
		for _, names := range schemas {
			sort.Strings(names)
		}
		metadata[share.Name] = schemas
	}
	return metadata, nil
}

// QueryTable requests the data files of a table. The server replies with
// newline-delimited JSON: a protocol line, a metadata line, then one line per
// data file carrying a presigned URL.
func (c *Client) QueryTable(ctx context.Context, share, schema, table string) ([]DataFile, error) {
	path := fmt.Sprintf("/shares/%s/schemas/%s/tables/%s/query",
		url.PathEscape(share), url.PathEscape(schema), url.PathEscape(table))

	body, err := c.do(ctx, http.MethodPost, path, bytes.NewReader([]byte(`{}`)))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var files []DataFile
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry struct {
			File *DataFile `json:"file"`
		}
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse query response line: %w", err)
		}
		if entry.File != nil {
			files = append(files, *entry.File)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read query response: %w", err)
	}
	return files, nil
}

// FetchFile downloads one presigned data file. No bearer token is sent; the
// URL itself carries the authorization.
func (c *Client) FetchFile(ctx context.Context, file DataFile) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create file request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch data file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var (
		items     []T
		pageToken string
	)
	for {
		p := path
		if pageToken != "" {
			p += "?pageToken=" + url.QueryEscape(pageToken)
		}
		body, err := c.do(ctx, http.MethodGet, p, nil)
		if err != nil {
			return nil, err
		}

		var page listResponse[T]
		err = json.NewDecoder(body).Decode(&page)
		body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse listing response: %w", err)
		}

		items = append(items, page.Items...)
		if page.NextPageToken == "" {
			return items, nil
		}
		pageToken = page.NextPageToken
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.profile.Endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.profile.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.profile.BearerToken)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sharing server request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("sharing server returned status %d for %s: %s", resp.StatusCode, path, bytes.TrimSpace(msg))
	}
	return resp.Body, nil
}
