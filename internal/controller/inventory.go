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

package controller

import (
	"context"
	"errors"

	"github.com/go-logr/logr"
	"github.com/sourcegraph/conc/iter"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/adapter"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/metrics"
	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
)

var ErrBuildInventory = errors.New("building inventory")

// ---------------------------------------------------- INTERFACE --------------------------------------------------- //

// Builder builds an inventory of a cluster.
type Builder interface {
	// BuildInventory authenticates, lists every node and its VMs, then assembles the inventory.
	// The first failure aborts the build and no inventory is returned.
	BuildInventory(ctx context.Context) (types.Inventory, error)
}

// Options configures a Builder.
type Options struct {
	// AnsibleUser is set as the ansible_user var of every group.
	AnsibleUser string
	// DefaultVMIP identifies VMs that do not report an IP.
	DefaultVMIP string
	// OSGroups classifies VMs into groups. When empty, the inventory is a flat host list.
	OSGroups types.KeywordGroups
	// MaxConcurrency bounds the number of per-node VM listings in flight. Values below 2 mean sequential.
	MaxConcurrency int
	// Recorder is optional.
	Recorder *metrics.Recorder
}

// --------------------------------------------------- CONSTRUCTORS ------------------------------------------------- //

// NewBuilder returns a new Builder.
func NewBuilder(proxmox adapter.Proxmox, opts Options) Builder {
	return &builder{
		proxmox: proxmox,
		opts:    opts,
	}
}

// ---------------------------------------------------- BUILDER ----------------------------------------------------- //

type builder struct {
	proxmox adapter.Proxmox
	opts    Options
}

func (b *builder) BuildInventory(ctx context.Context) (types.Inventory, error) {
	log := logr.FromContextOrDiscard(ctx)

	creds, err := b.proxmox.Authenticate(ctx)
	if err != nil {
		return nil, errors.Join(err, ErrBuildInventory)
	}

	nodes, err := b.proxmox.ListNodes(ctx, creds)
	if err != nil {
		return nil, errors.Join(err, ErrBuildInventory)
	}

	log.V(1).Info("listed nodes", "count", len(nodes))

	vms, err := b.listVMs(ctx, creds, nodes)
	if err != nil {
		return nil, errors.Join(err, ErrBuildInventory)
	}

	inventory := b.assemble(nodes, vms)
	b.record(inventory)

	return inventory, nil
}

// listVMs returns the VMs of each node, indexed like nodes.
func (b *builder) listVMs(
	ctx context.Context,
	creds types.Credentials,
	nodes []types.Node,
) ([][]types.VirtualMachine, error) {
	log := logr.FromContextOrDiscard(ctx)

	list := func(node *types.Node) ([]types.VirtualMachine, error) {
		vms, err := b.proxmox.ListVMs(ctx, creds, *node)
		if err != nil {
			return nil, err
		}

		log.V(1).Info("listed VMs", "node", node.Name, "count", len(vms))

		return vms, nil
	}

	if b.opts.MaxConcurrency < 2 {
		out := make([][]types.VirtualMachine, 0, len(nodes))

		for i := range nodes {
			vms, err := list(&nodes[i])
			if err != nil {
				return nil, err
			}

			out = append(out, vms)
		}

		return out, nil
	}

	// Mapper keeps results indexed like its input, so host order does not depend on arrival order.
	mapper := iter.Mapper[types.Node, []types.VirtualMachine]{MaxGoroutines: b.opts.MaxConcurrency}

	out, err := mapper.MapErr(nodes, list)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// assemble builds the inventory from nodes and their VMs. vms must be indexed like nodes.
func (b *builder) assemble(nodes []types.Node, vms [][]types.VirtualMachine) types.Inventory {
	all := types.NewGroup(b.vars())
	inventory := types.Inventory{types.GroupAll: all}

	if len(b.opts.OSGroups) == 0 {
		for i, node := range nodes {
			all.Hosts = append(all.Hosts, node.Name)

			for _, vm := range vms[i] {
				all.Hosts = append(all.Hosts, b.hostID(vm))
			}
		}

		return inventory
	}

	all.Children = make(map[string]*types.Group, len(b.opts.OSGroups)+2)
	all.Children[types.GroupProxmoxNodes] = types.NewGroup(b.vars())

	for _, group := range b.opts.OSGroups {
		all.Children[group.Name] = types.NewGroup(b.vars())
	}

	all.Children[types.GroupOtherVMs] = types.NewGroup(b.vars())

	proxmoxNodes := all.Children[types.GroupProxmoxNodes]

	for i, node := range nodes {
		proxmoxNodes.Hosts = append(proxmoxNodes.Hosts, node.Name)

		for _, vm := range vms[i] {
			group := all.Children[Classify(vm.Name, b.opts.OSGroups)]
			group.Hosts = append(group.Hosts, b.hostID(vm))
		}
	}

	return inventory
}

// hostID returns the reported IP of vm, or the default IP when none is reported.
func (b *builder) hostID(vm types.VirtualMachine) string {
	if vm.IP != "" {
		return vm.IP
	}

	return b.opts.DefaultVMIP
}

func (b *builder) vars() map[string]any {
	return map[string]any{types.VarAnsibleUser: b.opts.AnsibleUser}
}

func (b *builder) record(inventory types.Inventory) {
	all := inventory[types.GroupAll]
	b.opts.Recorder.RecordGroup(types.GroupAll, len(all.Hosts))

	for name, group := range all.Children {
		b.opts.Recorder.RecordGroup(name, len(group.Hosts))
	}
}
