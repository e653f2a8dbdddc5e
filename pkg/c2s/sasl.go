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

package c2s

import (
	"crypto/tls"
	"encoding/base64"
	"strings"

	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/pkg/errors"
	"mellium.im/sasl"
)

const (
	mechanismsName = "mechanisms"
	mechanismName  = "mechanism"
	authName       = "auth"
	challengeName  = "challenge"
	responseName   = "response"
	successName    = "success"
	failureName    = "failure"
)

// SASL failure conditions (RFC 6120 section 6.5).
const (
	saslAborted              = "aborted"
	saslAccountDisabled      = "account-disabled"
	saslCredentialsExpired   = "credentials-expired"
	saslEncryptionRequired   = "encryption-required"
	saslIncorrectEncoding    = "incorrect-encoding"
	saslInvalidAuthzID       = "invalid-authzid"
	saslInvalidMechanism     = "invalid-mechanism"
	saslMalformedRequest     = "malformed-request"
	saslMechanismTooWeak     = "mechanism-too-weak"
	saslNotAuthorized        = "not-authorized"
	saslTemporaryAuthFailure = "temporary-auth-failure"
)

var errServerSignature = errors.New("c2s: SASL server verification failed")

// supported mechanisms, strongest first
var mechanisms = []sasl.Mechanism{
	sasl.ScramSha256Plus,
	sasl.ScramSha1Plus,
	sasl.ScramSha256,
	sasl.ScramSha1,
	sasl.Plain,
}

func defaultMechanisms() []string {
	names := make([]string, 0, len(mechanisms))
	for _, m := range mechanisms {
		names = append(names, m.Name)
	}
	return names
}

func lookupMechanism(name string) (sasl.Mechanism, bool) {
	for _, m := range mechanisms {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return sasl.Mechanism{}, false
}

// saslNegotiator runs client side SASL authentication for a single connection attempt.
type saslNegotiator struct {
	prefs    []string
	username string
	password string

	tried   map[string]bool
	mech    string
	neg     *sasl.Negotiator
	more    bool
	offered []string
	tlsSt   *tls.ConnectionState
}

func newSASLNegotiator(prefs []string, username, password string) *saslNegotiator {
	if len(prefs) == 0 {
		prefs = defaultMechanisms()
	}
	return &saslNegotiator{
		prefs:    prefs,
		username: username,
		password: password,
		tried:    make(map[string]bool),
	}
}

// offeredMechanisms returns the mechanism names advertised in stream features.
func offeredMechanisms(features *xmpp.Element) []string {
	mechs := features.ChildNamespace(mechanismsName, xmpp.SASLNamespace)
	if mechs == nil {
		return nil
	}
	var ret []string
	for _, m := range mechs.Children() {
		if m.Name() == mechanismName {
			ret = append(ret, strings.TrimSpace(m.Text()))
		}
	}
	return ret
}

// start selects the strongest preferred mechanism offered by the server and not yet tried,
// returning the initial auth element.
// cs is nil on unencrypted streams, in which case channel binding mechanisms are skipped.
func (s *saslNegotiator) start(offered []string, cs *tls.ConnectionState) (*xmpp.Element, error) {
	s.offered = offered
	s.tlsSt = cs
	return s.next()
}

// next moves on to the next candidate mechanism.
func (s *saslNegotiator) next() (*xmpp.Element, error) {
	for _, name := range s.prefs {
		m, ok := lookupMechanism(name)
		if !ok || s.tried[m.Name] || !contains(s.offered, m.Name) {
			continue
		}
		if strings.HasSuffix(m.Name, "-PLUS") && s.tlsSt == nil {
			continue
		}
		s.tried[m.Name] = true
		return s.begin(m)
	}
	return nil, newError(AuthMechanism, errNoMechanism)
}

func (s *saslNegotiator) begin(m sasl.Mechanism) (*xmpp.Element, error) {
	opts := []sasl.Option{
		sasl.Credentials(func() (username, password, identity []byte) {
			return []byte(s.username), []byte(s.password), nil
		}),
		sasl.RemoteMechanisms(s.offered...),
	}
	if s.tlsSt != nil {
		opts = append(opts, sasl.TLSState(*s.tlsSt))
	}
	s.mech = m.Name
	s.neg = sasl.NewClient(m, opts...)

	more, resp, err := s.neg.Step(nil)
	if err != nil {
		return nil, newError(AuthMechanism, err)
	}
	s.more = more

	auth := xmpp.NewElementNamespace(authName, xmpp.SASLNamespace)
	auth.SetAttribute(mechanismName, m.Name)
	auth.SetText(encodeSASL(resp))
	return auth, nil
}

// challenge answers a server challenge.
func (s *saslNegotiator) challenge(elem *xmpp.Element) (*xmpp.Element, error) {
	data, err := decodeSASL(elem.Text())
	if err != nil {
		return nil, &Error{Kind: Protocol, Condition: saslIncorrectEncoding, Err: err}
	}
	more, resp, err := s.neg.Step(data)
	if err != nil {
		return nil, newError(AuthCredentials, err)
	}
	s.more = more

	return xmpp.NewElementNamespace(responseName, xmpp.SASLNamespace).SetText(encodeSASL(resp)), nil
}

// success validates additional success data, which carries the SCRAM server signature.
func (s *saslNegotiator) success(elem *xmpp.Element) error {
	data, err := decodeSASL(elem.Text())
	if err != nil {
		return &Error{Kind: Protocol, Condition: saslIncorrectEncoding, Err: err}
	}
	if !s.more {
		return nil
	}
	if len(data) == 0 {
		return newError(AuthCredentials, errServerSignature)
	}
	if _, _, err := s.neg.Step(data); err != nil {
		return newError(AuthCredentials, errors.Wrap(errServerSignature, err.Error()))
	}
	s.more = false
	return nil
}

// failure maps a SASL failure element into a classified error.
func (s *saslNegotiator) failure(elem *xmpp.Element) *Error {
	var cond, text string
	for _, ch := range elem.Children() {
		if ch.Name() == "text" {
			text = ch.Text()
			continue
		}
		if len(cond) == 0 {
			cond = ch.Name()
		}
	}
	e := &Error{Kind: failureKind(cond), Condition: cond}
	if len(text) > 0 {
		e.Err = errors.New(text)
	}
	return e
}

func failureKind(cond string) ErrorKind {
	switch cond {
	case saslInvalidMechanism, saslMechanismTooWeak, saslEncryptionRequired,
		saslMalformedRequest, saslIncorrectEncoding, saslAborted:
		return AuthMechanism
	case saslTemporaryAuthFailure:
		return AuthTemporary
	default: // not-authorized, credentials-expired, account-disabled, invalid-authzid
		return AuthCredentials
	}
}

// RFC 6120 6.4.2: an empty response is transmitted as a single equals sign.
func encodeSASL(b []byte) string {
	if len(b) == 0 {
		return "="
	}
	return base64.StdEncoding.EncodeToString(b)
}

func decodeSASL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || s == "=" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(s)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
