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

type elementSet []*Element

func (es elementSet) all() []*Element {
	if len(es) == 0 {
		return nil
	}
	ret := make([]*Element, len(es))
	copy(ret, es)
	return ret
}

func (es elementSet) child(name string) *Element {
	for _, e := range es {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

func (es elementSet) childNamespace(name, ns string) *Element {
	for _, e := range es {
		if e.Name() == name && e.Namespace() == ns {
			return e
		}
	}
	return nil
}

func (es elementSet) childrenNamespace(name, ns string) []*Element {
	var ret []*Element
	for _, e := range es {
		if e.Name() == name && e.Namespace() == ns {
			ret = append(ret, e)
		}
	}
	return ret
}

func (es *elementSet) removeNamespace(name, ns string) {
	filtered := (*es)[:0]
	for _, e := range *es {
		if e.Name() == name && e.Namespace() == ns {
			continue
		}
		filtered = append(filtered, e)
	}
	*es = filtered
}
