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

// Package proxmoxfake serves a fake Proxmox VE API for tests.
package proxmoxfake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
)

const (
	DefaultUsername = "root@pam"
	DefaultPassword = "secret"
	DefaultTicket   = "PVE:root@pam:4EEC61E2::fake-ticket"
	DefaultCSRF     = "4EEC61E2:fake-csrf"

	// APIPath is the base path of the API, as served by a real cluster.
	APIPath = "/api2/json"
)

// Fake is a fake Proxmox VE API.
type Fake struct {
	t testing.TB

	Username string
	Password string
	Ticket   string
	CSRF     string

	// Nodes is returned by GET /nodes.
	Nodes []types.Node
	// VMs is returned by GET /nodes/{node}/qemu, keyed by node name.
	VMs map[string][]types.VirtualMachine

	// TicketStatus overrides the status of POST /access/ticket when non-zero.
	TicketStatus int
	// TicketBody overrides the body of a successful POST /access/ticket when non-empty.
	TicketBody string
	// NodesStatus overrides the status of GET /nodes when non-zero.
	NodesStatus int
	// QemuStatus overrides the status of GET /nodes/{node}/qemu per node when set.
	QemuStatus map[string]int

	Server *httptest.Server

	mu    sync.Mutex
	calls []string
}

// New returns an unstarted fake populated with default credentials.
func New(t testing.TB) *Fake {
	t.Helper()

	return &Fake{
		t:          t,
		Username:   DefaultUsername,
		Password:   DefaultPassword,
		Ticket:     DefaultTicket,
		CSRF:       DefaultCSRF,
		Nodes:      make([]types.Node, 0),
		VMs:        make(map[string][]types.VirtualMachine),
		QemuStatus: make(map[string]int),
	}
}

// WithNode appends a node and its VMs.
func (f *Fake) WithNode(name string, vms ...types.VirtualMachine) *Fake {
	f.Nodes = append(f.Nodes, types.Node{Name: name, Status: "online"})
	f.VMs[name] = append(f.VMs[name], vms...)

	return f
}

// Start serves the fake over plain HTTP. The server is closed on test cleanup.
func (f *Fake) Start() *Fake {
	f.Server = httptest.NewServer(f.handler())
	f.t.Cleanup(f.Server.Close)

	return f
}

// StartTLS serves the fake over HTTPS with a self-signed certificate.
func (f *Fake) StartTLS() *Fake {
	f.Server = httptest.NewTLSServer(f.handler())
	f.t.Cleanup(f.Server.Close)

	return f
}

// URL returns the API base URL.
func (f *Fake) URL() string {
	return f.Server.URL + APIPath
}

// Calls returns the "METHOD path" of every request received, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	copy(out, f.calls)

	return out
}

// CallCount returns how many received requests have a path starting with prefix.
func (f *Fake) CallCount(prefix string) int {
	n := 0

	for _, call := range f.Calls() {
		_, path, _ := strings.Cut(call, " ")
		if strings.HasPrefix(path, APIPath+prefix) {
			n++
		}
	}

	return n
}

func (f *Fake) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+APIPath+"/access/ticket", f.ticket)
	mux.HandleFunc("GET "+APIPath+"/nodes", f.authenticated(f.nodes))
	mux.HandleFunc("GET "+APIPath+"/nodes/{node}/qemu", f.authenticated(f.qemu))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		f.mu.Unlock()

		mux.ServeHTTP(w, r)
	})
}

func (f *Fake) ticket(w http.ResponseWriter, r *http.Request) {
	if f.TicketStatus != 0 {
		http.Error(w, "authentication failure", f.TicketStatus)
		return
	}

	require.NoError(f.t, r.ParseForm())

	if r.PostForm.Get("username") != f.Username || r.PostForm.Get("password") != f.Password {
		http.Error(w, "authentication failure", http.StatusUnauthorized)
		return
	}

	if f.TicketBody != "" {
		_, _ = w.Write([]byte(f.TicketBody))
		return
	}

	f.writeData(w, types.Credentials{Ticket: f.Ticket, CSRFPreventionToken: f.CSRF})
}

func (f *Fake) nodes(w http.ResponseWriter, _ *http.Request) {
	if f.NodesStatus != 0 {
		http.Error(w, "nodes unavailable", f.NodesStatus)
		return
	}

	f.writeData(w, f.Nodes)
}

func (f *Fake) qemu(w http.ResponseWriter, r *http.Request) {
	node := r.PathValue("node")

	if status, ok := f.QemuStatus[node]; ok {
		http.Error(w, "qemu unavailable", status)
		return
	}

	vms, ok := f.VMs[node]
	if !ok {
		http.Error(w, "no such node", http.StatusNotFound)
		return
	}

	f.writeData(w, vms)
}

func (f *Fake) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("PVEAuthCookie")
		if err != nil || cookie.Value != f.Ticket || r.Header.Get("CSRFPreventionToken") != f.CSRF {
			http.Error(w, "permission denied - invalid PVE ticket", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (f *Fake) writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(f.t, json.NewEncoder(w).Encode(map[string]any{"data": data}))
}
