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

package types

const (
	// GroupAll is the root group. It always exists.
	GroupAll = "all"
	// GroupProxmoxNodes holds every node name.
	GroupProxmoxNodes = "proxmox_nodes"
	// GroupOtherVMs holds VMs that matched no keyword.
	GroupOtherVMs = "other_vms"

	// VarAnsibleUser is the group variable holding the managed-host login name.
	VarAnsibleUser = "ansible_user"
)

// Inventory is an Ansible dynamic inventory, keyed by group name.
type Inventory map[string]*Group

// Group is a named bucket of hosts.
type Group struct {
	// Hosts is ordered by encounter. Duplicates are kept.
	Hosts    []string          `json:"hosts"`
	Vars     map[string]any    `json:"vars,omitempty"`
	Children map[string]*Group `json:"children,omitempty"`
}

// NewGroup returns an empty group carrying the given vars.
func NewGroup(vars map[string]any) *Group {
	return &Group{
		Hosts: make([]string, 0),
		Vars:  vars,
	}
}
