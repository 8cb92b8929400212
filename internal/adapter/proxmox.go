// Copyright 2024 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/metrics"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/httputil"
)

const (
	// AuthCookieName is the cookie carrying the ticket.
	AuthCookieName = "PVEAuthCookie"
	// CSRFHeaderName is the header carrying the anti-forgery token.
	CSRFHeaderName = "CSRFPreventionToken"
)

var (
	ErrAuth  = errors.New("authenticating against proxmox API")
	ErrFetch = errors.New("fetching from proxmox API")

	errMissingTicket    = errors.New("ticket response is missing data.ticket")
	errMissingCSRFToken = errors.New("ticket response is missing data.CSRFPreventionToken")
	errEmptyNodeName    = errors.New("node name must not be empty")
)

// --------------------------------------------------- INTERFACE ---------------------------------------------------- //

// Proxmox is the subset of the Proxmox VE API needed to build an inventory.
type Proxmox interface {
	// Authenticate exchanges the configured username and password for session credentials.
	Authenticate(ctx context.Context) (types.Credentials, error)
	// ListNodes lists the cluster nodes in API order.
	ListNodes(ctx context.Context, creds types.Credentials) ([]types.Node, error)
	// ListVMs lists the qemu guests of a single node in API order.
	ListVMs(ctx context.Context, creds types.Credentials, node types.Node) ([]types.VirtualMachine, error)
}

// ProxmoxConfig holds the connection parameters of the API.
type ProxmoxConfig struct {
	// APIURL is the API base URL, e.g. https://pve.example.com:8006/api2/json.
	APIURL   string
	Username string
	Password string
}

// --------------------------------------------------- PROXMOX ------------------------------------------------------ //

// NewProxmox returns a Proxmox adapter. recorder may be nil.
func NewProxmox(client httputil.Client, config ProxmoxConfig, recorder *metrics.Recorder) Proxmox {
	return &proxmox{
		client:   client,
		baseURL:  strings.TrimRight(config.APIURL, "/"),
		username: config.Username,
		password: config.Password,
		recorder: recorder,
	}
}

type proxmox struct {
	client   httputil.Client
	baseURL  string
	username string
	password string

	recorder *metrics.Recorder
}

// envelope is the shape of every Proxmox API response.
type envelope[T any] struct {
	Data T `json:"data"`
}

func (p *proxmox) Authenticate(ctx context.Context) (types.Credentials, error) {
	form := url.Values{
		"username": {p.username},
		"password": {p.password},
	}

	out := envelope[types.Credentials]{}

	start := time.Now()
	err := p.client.PostForm(ctx, p.baseURL+"/access/ticket", form, nil, &out)
	if err == nil {
		err = validateCredentials(out.Data)
	}

	p.recorder.RecordRequest(metrics.EndpointTicket, err, time.Since(start))

	if err != nil {
		return types.Credentials{}, errors.Join(err, ErrAuth)
	}

	slog.DebugContext(ctx, "authenticated against proxmox API", "username", p.username)

	return out.Data, nil
}

func (p *proxmox) ListNodes(ctx context.Context, creds types.Credentials) ([]types.Node, error) {
	out := envelope[[]types.Node]{}

	start := time.Now()
	err := p.client.GetJSON(ctx, p.baseURL+"/nodes", authHeader(creds), &out)
	p.recorder.RecordRequest(metrics.EndpointNodes, err, time.Since(start))

	if err != nil {
		return nil, errors.Join(err, ErrFetch)
	}

	if out.Data == nil {
		return make([]types.Node, 0), nil
	}

	return out.Data, nil
}

func (p *proxmox) ListVMs(
	ctx context.Context,
	creds types.Credentials,
	node types.Node,
) ([]types.VirtualMachine, error) {
	if node.Name == "" {
		return nil, errors.Join(errEmptyNodeName, ErrFetch)
	}

	out := envelope[[]types.VirtualMachine]{}
	rawURL := fmt.Sprintf("%s/nodes/%s/qemu", p.baseURL, url.PathEscape(node.Name))

	start := time.Now()
	err := p.client.GetJSON(ctx, rawURL, authHeader(creds), &out)
	p.recorder.RecordRequest(metrics.EndpointQemu, err, time.Since(start))

	if err != nil {
		return nil, errors.Join(fmt.Errorf("listing VMs of node %q", node.Name), err, ErrFetch)
	}

	if out.Data == nil {
		return make([]types.VirtualMachine, 0), nil
	}

	return out.Data, nil
}

func validateCredentials(creds types.Credentials) error {
	if creds.Ticket == "" {
		return errMissingTicket
	}

	if creds.CSRFPreventionToken == "" {
		return errMissingCSRFToken
	}

	return nil
}

func authHeader(creds types.Credentials) http.Header {
	header := make(http.Header)
	header.Set("Cookie", fmt.Sprintf("%s=%s", AuthCookieName, creds.Ticket))
	header.Set(CSRFHeaderName, creds.CSRFPreventionToken)

	return header
}
