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
	"strings"

	"github.com/alexandremahdhaoui/proxmox-inventory/internal/types"
)

// Classify returns the name of the first group with a keyword contained in vmName, ignoring case.
// Groups are tried in order. types.GroupOtherVMs is returned when nothing matches.
func Classify(vmName string, groups types.KeywordGroups) string {
	name := strings.ToLower(vmName)

	for _, group := range groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				return group.Name
			}
		}
	}

	return types.GroupOtherVMs
}
