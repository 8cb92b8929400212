//go:build unit

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

package adapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/adapter"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/metrics"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/fakes/proxmoxfake"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/httputil"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/util/mocks/mockhttputil"
)

const apiURL = "https://pve.example.com:8006/api2/json"

var creds = types.Credentials{Ticket: "ticket", CSRFPreventionToken: "csrf"}

func TestProxmox(t *testing.T) {
	var (
		ctx context.Context

		client   *mockhttputil.MockClient
		recorder *metrics.Recorder
		proxmox  adapter.Proxmox
	)

	setup := func(t *testing.T) {
		t.Helper()

		ctx = context.Background()

		client = mockhttputil.NewMockClient(t)
		recorder = metrics.New()
		proxmox = adapter.NewProxmox(client, adapter.ProxmoxConfig{
			APIURL:   apiURL + "/",
			Username: "root@pam",
			Password: "secret",
		}, recorder)
	}

	t.Run("Authenticate", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			expectedForm := url.Values{"username": {"root@pam"}, "password": {"secret"}}

			client.EXPECT().
				PostForm(ctx, apiURL+"/access/ticket", expectedForm, mock.Anything, mock.Anything).
				Run(func(_ context.Context, _ string, _ url.Values, _ http.Header, out interface{}) {
					raw := `{"data":{"ticket":"ticket","CSRFPreventionToken":"csrf","username":"root@pam"}}`
					require.NoError(t, jsonInto(raw, out))
				}).
				Return(nil).
				Once()

			actual, err := proxmox.Authenticate(ctx)
			assert.NoError(t, err)
			assert.Equal(t, creds, actual)
			assert.Equal(t, 1.0, testutil.ToFloat64(recorder.RequestCounter(metrics.EndpointTicket, metrics.ResultSuccess)))
		})

		t.Run("Rejected", func(t *testing.T) {
			setup(t)

			client.EXPECT().
				PostForm(ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(httputil.ErrUnexpectedStatus).
				Once()

			_, err := proxmox.Authenticate(ctx)
			assert.ErrorIs(t, err, adapter.ErrAuth)
			assert.ErrorIs(t, err, httputil.ErrUnexpectedStatus)
			assert.Equal(t, 1.0, testutil.ToFloat64(recorder.RequestCounter(metrics.EndpointTicket, metrics.ResultFailure)))
		})

		for name, raw := range map[string]string{
			"MissingTicket":    `{"data":{"CSRFPreventionToken":"csrf"}}`,
			"MissingCSRFToken": `{"data":{"ticket":"ticket"}}`,
			"MissingData":      `{}`,
		} {
			t.Run(name, func(t *testing.T) {
				setup(t)

				client.EXPECT().
					PostForm(ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Run(func(_ context.Context, _ string, _ url.Values, _ http.Header, out interface{}) {
						require.NoError(t, jsonInto(raw, out))
					}).
					Return(nil).
					Once()

				_, err := proxmox.Authenticate(ctx)
				assert.ErrorIs(t, err, adapter.ErrAuth)
			})
		}
	})

	t.Run("ListNodes", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			client.EXPECT().
				GetJSON(ctx, apiURL+"/nodes", mock.Anything, mock.Anything).
				Run(func(_ context.Context, _ string, header http.Header, out interface{}) {
					assert.Equal(t, "PVEAuthCookie=ticket", header.Get("Cookie"))
					assert.Equal(t, "csrf", header.Get(adapter.CSRFHeaderName))
					require.NoError(t, jsonInto(`{"data":[{"node":"pve2"},{"node":"pve1"}]}`, out))
				}).
				Return(nil).
				Once()

			actual, err := proxmox.ListNodes(ctx, creds)
			assert.NoError(t, err)
			assert.Equal(t, []types.Node{{Name: "pve2"}, {Name: "pve1"}}, actual)
		})

		t.Run("Empty", func(t *testing.T) {
			setup(t)

			client.EXPECT().
				GetJSON(ctx, mock.Anything, mock.Anything, mock.Anything).
				Return(nil).
				Once()

			actual, err := proxmox.ListNodes(ctx, creds)
			assert.NoError(t, err)
			assert.NotNil(t, actual)
			assert.Empty(t, actual)
		})

		t.Run("Failure", func(t *testing.T) {
			setup(t)

			client.EXPECT().
				GetJSON(ctx, mock.Anything, mock.Anything, mock.Anything).
				Return(httputil.ErrUnexpectedStatus).
				Once()

			_, err := proxmox.ListNodes(ctx, creds)
			assert.ErrorIs(t, err, adapter.ErrFetch)
		})
	})

	t.Run("ListVMs", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			setup(t)

			client.EXPECT().
				GetJSON(ctx, apiURL+"/nodes/pve1/qemu", mock.Anything, mock.Anything).
				Run(func(_ context.Context, _ string, _ http.Header, out interface{}) {
					raw := `{"data":[{"name":"ubuntu-web","ip":"10.0.0.5","vmid":100},{"name":"win","vmid":101}]}`
					require.NoError(t, jsonInto(raw, out))
				}).
				Return(nil).
				Once()

			actual, err := proxmox.ListVMs(ctx, creds, types.Node{Name: "pve1"})
			assert.NoError(t, err)
			assert.Equal(t, []types.VirtualMachine{
				{Name: "ubuntu-web", IP: "10.0.0.5", VMID: 100},
				{Name: "win", VMID: 101},
			}, actual)
		})

		t.Run("EscapesNodeName", func(t *testing.T) {
			setup(t)

			client.EXPECT().
				GetJSON(ctx, apiURL+"/nodes/a%2Fb/qemu", mock.Anything, mock.Anything).
				Return(nil).
				Once()

			_, err := proxmox.ListVMs(ctx, creds, types.Node{Name: "a/b"})
			assert.NoError(t, err)
		})

		t.Run("EmptyNodeName", func(t *testing.T) {
			setup(t)

			_, err := proxmox.ListVMs(ctx, creds, types.Node{})
			assert.ErrorIs(t, err, adapter.ErrFetch)
		})

		t.Run("Failure", func(t *testing.T) {
			setup(t)

			client.EXPECT().
				GetJSON(ctx, mock.Anything, mock.Anything, mock.Anything).
				Return(errors.New("boom")).
				Once()

			_, err := proxmox.ListVMs(ctx, creds, types.Node{Name: "pve1"})
			assert.ErrorIs(t, err, adapter.ErrFetch)
			assert.Contains(t, err.Error(), "pve1")
		})
	})
}

// TestProxmox_FakeServer exercises the adapter against a fake API over HTTPS.
func TestProxmox_FakeServer(t *testing.T) {
	fake := proxmoxfake.New(t).
		WithNode("pve1", types.VirtualMachine{Name: "ubuntu-web", IP: "10.0.0.5", VMID: 100}).
		WithNode("pve2").
		StartTLS()

	proxmox := adapter.NewProxmox(httputil.NewClient(fake.Server.Client()), adapter.ProxmoxConfig{
		APIURL:   fake.URL(),
		Username: proxmoxfake.DefaultUsername,
		Password: proxmoxfake.DefaultPassword,
	}, nil)

	ctx := context.Background()

	actualCreds, err := proxmox.Authenticate(ctx)
	require.NoError(t, err)
	assert.Equal(t, proxmoxfake.DefaultTicket, actualCreds.Ticket)
	assert.Equal(t, proxmoxfake.DefaultCSRF, actualCreds.CSRFPreventionToken)

	nodes, err := proxmox.ListNodes(ctx, actualCreds)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "pve1", nodes[0].Name)
	assert.Equal(t, "pve2", nodes[1].Name)

	vms, err := proxmox.ListVMs(ctx, actualCreds, nodes[0])
	require.NoError(t, err)
	assert.Equal(t, []types.VirtualMachine{{Name: "ubuntu-web", IP: "10.0.0.5", VMID: 100}}, vms)

	vms, err = proxmox.ListVMs(ctx, actualCreds, nodes[1])
	require.NoError(t, err)
	assert.Empty(t, vms)

	t.Run("InvalidTicket", func(t *testing.T) {
		_, err := proxmox.ListNodes(ctx, types.Credentials{Ticket: "forged", CSRFPreventionToken: "forged"})
		assert.ErrorIs(t, err, adapter.ErrFetch)
		assert.ErrorIs(t, err, httputil.ErrUnexpectedStatus)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		wrong := adapter.NewProxmox(httputil.NewClient(fake.Server.Client()), adapter.ProxmoxConfig{
			APIURL:   fake.URL(),
			Username: proxmoxfake.DefaultUsername,
			Password: "wrong",
		}, nil)

		_, err := wrong.Authenticate(ctx)
		assert.ErrorIs(t, err, adapter.ErrAuth)
	})
}

// jsonInto decodes raw into out the way httputil.Client would.
func jsonInto(raw string, out interface{}) error {
	return json.Unmarshal([]byte(raw), out)
}
