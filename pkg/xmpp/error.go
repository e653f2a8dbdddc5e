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

// StanzaErrorType represents a stanza error type.
type StanzaErrorType string

// Stanza error types.
const (
	AuthErrorType     StanzaErrorType = "auth"
	CancelErrorType   StanzaErrorType = "cancel"
	ContinueErrorType StanzaErrorType = "continue"
	ModifyErrorType   StanzaErrorType = "modify"
	WaitErrorType     StanzaErrorType = "wait"
)

// StanzaErrorCondition represents a stanza error defined condition.
type StanzaErrorCondition string

// Stanza error conditions as defined in RFC 6120 §8.3.3.
const (
	BadRequest            StanzaErrorCondition = "bad-request"
	Conflict              StanzaErrorCondition = "conflict"
	FeatureNotImplemented StanzaErrorCondition = "feature-not-implemented"
	Forbidden             StanzaErrorCondition = "forbidden"
	Gone                  StanzaErrorCondition = "gone"
	InternalServerError   StanzaErrorCondition = "internal-server-error"
	ItemNotFound          StanzaErrorCondition = "item-not-found"
	JIDMalformed          StanzaErrorCondition = "jid-malformed"
	NotAcceptable         StanzaErrorCondition = "not-acceptable"
	NotAllowed            StanzaErrorCondition = "not-allowed"
	NotAuthorized         StanzaErrorCondition = "not-authorized"
	PolicyViolation       StanzaErrorCondition = "policy-violation"
	RecipientUnavailable  StanzaErrorCondition = "recipient-unavailable"
	Redirect              StanzaErrorCondition = "redirect"
	RegistrationRequired  StanzaErrorCondition = "registration-required"
	RemoteServerNotFound  StanzaErrorCondition = "remote-server-not-found"
	RemoteServerTimeout   StanzaErrorCondition = "remote-server-timeout"
	ResourceConstraint    StanzaErrorCondition = "resource-constraint"
	ServiceUnavailable    StanzaErrorCondition = "service-unavailable"
	SubscriptionRequired  StanzaErrorCondition = "subscription-required"
	UndefinedCondition    StanzaErrorCondition = "undefined-condition"
	UnexpectedRequest     StanzaErrorCondition = "unexpected-request"
)

var conditionTypes = map[StanzaErrorCondition]StanzaErrorType{
	BadRequest:            ModifyErrorType,
	Conflict:              CancelErrorType,
	FeatureNotImplemented: CancelErrorType,
	Forbidden:             AuthErrorType,
	Gone:                  CancelErrorType,
	InternalServerError:   CancelErrorType,
	ItemNotFound:          CancelErrorType,
	JIDMalformed:          ModifyErrorType,
	NotAcceptable:         ModifyErrorType,
	NotAllowed:            CancelErrorType,
	NotAuthorized:         AuthErrorType,
	PolicyViolation:       ModifyErrorType,
	RecipientUnavailable:  WaitErrorType,
	Redirect:              ModifyErrorType,
	RegistrationRequired:  AuthErrorType,
	RemoteServerNotFound:  CancelErrorType,
	RemoteServerTimeout:   WaitErrorType,
	ResourceConstraint:    WaitErrorType,
	ServiceUnavailable:    CancelErrorType,
	SubscriptionRequired:  AuthErrorType,
	UndefinedCondition:    CancelErrorType,
	UnexpectedRequest:     WaitErrorType,
}

// StanzaError represents a stanza "error" element.
type StanzaError struct {
	Type      StanzaErrorType
	Condition StanzaErrorCondition
	Text      string
}

// NewStanzaError returns a stanza error for a given condition using its default error type.
func NewStanzaError(cond StanzaErrorCondition) *StanzaError {
	typ, ok := conditionTypes[cond]
	if !ok {
		typ = CancelErrorType
	}
	return &StanzaError{Type: typ, Condition: cond}
}

// NewStanzaErrorFromElement extracts the stanza error carried by an error stanza.
// Returns nil if elem contains no error child.
func NewStanzaErrorFromElement(elem *Element) *StanzaError {
	errEl := elem.Child("error")
	if errEl == nil {
		return nil
	}
	se := &StanzaError{
		Type:      StanzaErrorType(errEl.Type()),
		Condition: UndefinedCondition,
	}
	for _, child := range errEl.Children() {
		if child.Namespace() != StanzasNamespace {
			continue
		}
		if child.Name() == "text" {
			se.Text = child.Text()
			continue
		}
		se.Condition = StanzaErrorCondition(child.Name())
	}
	return se
}

// Error satisfies error interface.
func (se *StanzaError) Error() string {
	if len(se.Text) > 0 {
		return string(se.Condition) + ": " + se.Text
	}
	return string(se.Condition)
}

// Element returns StanzaError equivalent XML element.
func (se *StanzaError) Element() *Element {
	errEl := NewElementName("error")
	errEl.SetAttribute(Type, string(se.Type))
	errEl.AppendElement(NewElementNamespace(string(se.Condition), StanzasNamespace))
	if len(se.Text) > 0 {
		errEl.AppendElement(NewElementNamespace("text", StanzasNamespace).SetText(se.Text))
	}
	return errEl
}
