// Copyright 2026 The parley Authors
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

package xmpp

type attributeSet []Attribute

func (as attributeSet) index(label string) int {
	for i, attr := range as {
		if attr.Label == label {
			return i
		}
	}
	return -1
}

func (as attributeSet) get(label string) string {
	if i := as.index(label); i != -1 {
		return as[i].Value
	}
	return ""
}

func (as *attributeSet) set(label, value string) {
	if i := as.index(label); i != -1 {
		(*as)[i].Value = value
		return
	}
	*as = append(*as, Attribute{Label: label, Value: value})
}

func (as *attributeSet) remove(label string) {
	if i := as.index(label); i != -1 {
		*as = append((*as)[:i], (*as)[i+1:]...)
	}
}
