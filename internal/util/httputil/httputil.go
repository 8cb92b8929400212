/*
Copyright 2024 Alexandre Mahdhaoui

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxErrorBodySize bounds how much of a non-success response body ends up in an error message.
const maxErrorBodySize = 512

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrSendingRequest   = errors.New("sending request")
	ErrDecodingBody     = errors.New("decoding response body")

	errBuildingRequest = errors.New("building request")
)

// --------------------------------------------------- INTERFACE ---------------------------------------------------- //

// Client is the minimal HTTP capability needed to talk to a JSON API.
type Client interface {
	// PostForm sends form as an url-encoded POST body and decodes the JSON response into out.
	PostForm(ctx context.Context, rawURL string, form url.Values, header http.Header, out any) error
	// GetJSON sends a GET request and decodes the JSON response into out.
	GetJSON(ctx context.Context, rawURL string, header http.Header, out any) error
}

// --------------------------------------------------- CLIENT ------------------------------------------------------- //

// NewClient returns a Client sending requests through httpClient.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{http: httpClient}
}

type client struct {
	http *http.Client
}

func (c *client) PostForm(
	ctx context.Context,
	rawURL string,
	form url.Values,
	header http.Header,
	out any,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Join(err, errBuildingRequest)
	}

	setHeaders(req, header)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *client) GetJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Join(err, errBuildingRequest)
	}

	setHeaders(req, header)

	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(err, ErrSendingRequest)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

		return fmt.Errorf("%w: %s %s: %d %s",
			ErrUnexpectedStatus,
			req.Method,
			req.URL.Path,
			resp.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(err, ErrDecodingBody)
	}

	return nil
}

func setHeaders(req *http.Request, header http.Header) {
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}
