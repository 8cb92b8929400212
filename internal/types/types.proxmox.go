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

// Credentials are the short-lived session credentials returned by the ticket endpoint.
type Credentials struct {
	// Ticket is sent as the PVEAuthCookie cookie.
	Ticket string `json:"ticket"`
	// CSRFPreventionToken is sent as the CSRFPreventionToken header.
	CSRFPreventionToken string `json:"CSRFPreventionToken"`
}

// Node is a member of the cluster.
type Node struct {
	// Name uniquely identifies the node. It is also used as the node's host identifier.
	Name   string `json:"node"`
	Status string `json:"status,omitempty"`
}

// VirtualMachine is a qemu guest running on a node.
type VirtualMachine struct {
	// Name is the display name, used for classification.
	Name string `json:"name"`
	// IP is the reported address. It may be empty.
	IP     string `json:"ip,omitempty"`
	VMID   int    `json:"vmid,omitempty"`
	Status string `json:"status,omitempty"`
}

// KeywordGroup maps a group name to the keywords that select it.
type KeywordGroup struct {
	Name     string
	Keywords []string
}

// KeywordGroups is an ordered list of keyword groups. Order matters: the first matching group wins.
type KeywordGroups []KeywordGroup
