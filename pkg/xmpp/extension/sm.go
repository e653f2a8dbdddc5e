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

package extension

import (
	"strconv"
	"time"

	"github.com/ortuman/parley/pkg/xmpp"
)

// SMEnabledInfo is the typed view of a stream management <enabled/> element.
type SMEnabledInfo struct {
	ID       string
	Resume   bool
	Location string
	Max      time.Duration
}

// NewSMEnable returns an <enable/> element, optionally requesting resumption.
func NewSMEnable(resume bool) *xmpp.Element {
	e := xmpp.NewElementNamespace("enable", StreamManagementNamespace)
	if resume {
		e.SetAttribute("resume", "true")
	}
	return e
}

// ParseSMEnabled reads an <enabled/> element.
func ParseSMEnabled(elem *xmpp.Element) SMEnabledInfo {
	info := SMEnabledInfo{
		ID:       elem.Attribute("id"),
		Location: elem.Attribute("location"),
	}
	switch elem.Attribute("resume") {
	case "true", "1":
		info.Resume = true
	}
	if secs, err := strconv.ParseUint(elem.Attribute("max"), 10, 32); err == nil {
		info.Max = time.Duration(secs) * time.Second
	}
	return info
}

// NewSMResume returns a <resume/> element for a previous stream id and last handled count.
func NewSMResume(previd string, h uint32) *xmpp.Element {
	e := xmpp.NewElementNamespace("resume", StreamManagementNamespace)
	e.SetAttribute("previd", previd)
	e.SetAttribute("h", strconv.FormatUint(uint64(h), 10))
	return e
}

// NewSMRequest returns an <r/> element.
func NewSMRequest() *xmpp.Element {
	return xmpp.NewElementNamespace("r", StreamManagementNamespace)
}

// NewSMAnswer returns an <a/> element carrying the handled count h.
func NewSMAnswer(h uint32) *xmpp.Element {
	e := xmpp.NewElementNamespace("a", StreamManagementNamespace)
	e.SetAttribute("h", strconv.FormatUint(uint64(h), 10))
	return e
}

// ParseH reads the 'h' attribute of an <a/>, <resumed/> or <failed/> element.
func ParseH(elem *xmpp.Element) (uint32, bool) {
	h, err := strconv.ParseUint(elem.Attribute("h"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(h), true
}

// SMFailedCondition returns the stanza error condition carried by a <failed/> element.
func SMFailedCondition(elem *xmpp.Element) xmpp.StanzaErrorCondition {
	for _, child := range elem.Children() {
		if child.Namespace() == xmpp.StanzasNamespace {
			return xmpp.StanzaErrorCondition(child.Name())
		}
	}
	return xmpp.UndefinedCondition
}
