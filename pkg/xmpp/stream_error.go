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

// StreamErrorCondition represents a stream error defined condition.
type StreamErrorCondition string

// Stream error conditions as defined in RFC 6120 §4.9.3.
const (
	StreamBadFormat             StreamErrorCondition = "bad-format"
	StreamConflict              StreamErrorCondition = "conflict"
	StreamConnectionTimeout     StreamErrorCondition = "connection-timeout"
	StreamHostUnknown           StreamErrorCondition = "host-unknown"
	StreamInternalServerError   StreamErrorCondition = "internal-server-error"
	StreamInvalidNamespace      StreamErrorCondition = "invalid-namespace"
	StreamInvalidXML            StreamErrorCondition = "invalid-xml"
	StreamNotAuthorized         StreamErrorCondition = "not-authorized"
	StreamPolicyViolation       StreamErrorCondition = "policy-violation"
	StreamResourceConstraint    StreamErrorCondition = "resource-constraint"
	StreamSystemShutdown        StreamErrorCondition = "system-shutdown"
	StreamUnsupportedStanzaType StreamErrorCondition = "unsupported-stanza-type"
	StreamUnsupportedVersion    StreamErrorCondition = "unsupported-version"
	StreamUndefinedCondition    StreamErrorCondition = "undefined-condition"
)

// StreamError represents a stream "error" element.
type StreamError struct {
	Condition StreamErrorCondition
	Text      string

	// Err is the underlying error, if any.
	Err error
}

// NewStreamError returns a stream error for a given condition.
func NewStreamError(cond StreamErrorCondition) *StreamError {
	return &StreamError{Condition: cond}
}

// NewStreamErrorFromElement parses a <stream:error/> element.
func NewStreamErrorFromElement(elem *Element) *StreamError {
	se := &StreamError{Condition: StreamUndefinedCondition}
	for _, child := range elem.Children() {
		if child.Namespace() != StreamErrorNamespace {
			continue
		}
		if child.Name() == "text" {
			se.Text = child.Text()
			continue
		}
		se.Condition = StreamErrorCondition(child.Name())
	}
	return se
}

// Error satisfies error interface.
func (se *StreamError) Error() string {
	s := "stream error: " + string(se.Condition)
	if len(se.Text) > 0 {
		s += " (" + se.Text + ")"
	}
	if se.Err != nil {
		s += ": " + se.Err.Error()
	}
	return s
}

// Unwrap returns the underlying error.
func (se *StreamError) Unwrap() error {
	return se.Err
}

// Element returns StreamError equivalent XML element.
func (se *StreamError) Element() *Element {
	errEl := NewElementName("stream:error")
	errEl.AppendElement(NewElementNamespace(string(se.Condition), StreamErrorNamespace))
	if len(se.Text) > 0 {
		errEl.AppendElement(NewElementNamespace("text", StreamErrorNamespace).SetText(se.Text))
	}
	return errEl
}
