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

package jingle

import (
	"encoding/base64"
	"net"
	"strconv"
	"strings"

	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/extension"
	"github.com/pkg/errors"
)

const (
	actionSessionInitiate  = "session-initiate"
	actionSessionAccept    = "session-accept"
	actionSessionTerminate = "session-terminate"
	actionTransportInfo    = "transport-info"
	actionTransportReplace = "transport-replace"
	actionTransportAccept  = "transport-accept"

	contentName      = "file"
	creatorInitiator = "initiator"

	candidateDirect = "direct"
	candidateProxy  = "proxy"

	// XEP-0260 type preferences
	directPreference = 126
	proxyPreference  = 10
)

var errMalformed = errors.New("jingle: malformed element")

// FileInfo describes the file offered in a session.
type FileInfo struct {
	Name string
	Size int64
	Hash HashValue
}

// Candidate is a SOCKS5 bytestream address.
type Candidate struct {
	CID      string
	Host     string
	Port     int
	JID      string
	Priority uint32
	Type     string
}

func (c Candidate) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type s5bTransport struct {
	SID        string
	DstAddr    string
	Candidates []Candidate

	CandidateUsed  string
	CandidateError bool
	Activated      string
	ProxyError     bool
}

type ibbTransport struct {
	SID       string
	BlockSize int
}

// jingleElement is the typed view of a <jingle/> payload with a single file content.
type jingleElement struct {
	Action    string
	SID       string
	Initiator string

	File   *FileInfo
	S5B    *s5bTransport
	IBB    *ibbTransport
	Reason Reason
}

func (j *jingleElement) element() *xmpp.Element {
	e := xmpp.NewElementNamespace("jingle", extension.JingleNamespace)
	e.SetAttribute("action", j.Action)
	if len(j.Initiator) > 0 {
		e.SetAttribute("initiator", j.Initiator)
	}
	e.SetAttribute("sid", j.SID)

	if j.File != nil || j.S5B != nil || j.IBB != nil {
		content := xmpp.NewElementName("content")
		content.SetAttribute("creator", creatorInitiator)
		content.SetAttribute("name", contentName)
		if j.File != nil {
			content.AppendElement(fileDescription(j.File))
		}
		if j.S5B != nil {
			content.AppendElement(j.S5B.element())
		}
		if j.IBB != nil {
			content.AppendElement(j.IBB.element())
		}
		e.AppendElement(content)
	}
	if len(j.Reason) > 0 {
		r := xmpp.NewElementName("reason")
		r.AppendElement(xmpp.NewElementName(string(j.Reason)))
		e.AppendElement(r)
	}
	return e
}

func parseJingle(elem *xmpp.Element) (*jingleElement, error) {
	if elem.Name() != "jingle" || elem.Namespace() != extension.JingleNamespace {
		return nil, errMalformed
	}
	j := &jingleElement{
		Action:    elem.Attribute("action"),
		SID:       elem.Attribute("sid"),
		Initiator: elem.Attribute("initiator"),
	}
	if len(j.Action) == 0 || len(j.SID) == 0 {
		return nil, errors.Wrap(errMalformed, "missing action or sid")
	}
	if content := elem.Child("content"); content != nil {
		for _, ch := range content.Children() {
			var err error
			switch {
			case ch.Name() == "description" && ch.Namespace() == extension.JingleFileTransfer:
				j.File, err = parseFileDescription(ch)
			case ch.Name() == "transport" && ch.Namespace() == extension.JingleS5BNamespace:
				j.S5B, err = parseS5BTransport(ch)
			case ch.Name() == "transport" && ch.Namespace() == extension.JingleIBBNamespace:
				j.IBB, err = parseIBBTransport(ch)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	if r := elem.Child("reason"); r != nil {
		for _, ch := range r.Children() {
			if knownReasons[Reason(ch.Name())] {
				j.Reason = Reason(ch.Name())
				break
			}
		}
		if len(j.Reason) == 0 {
			j.Reason = ReasonGeneralError
		}
	}
	return j, nil
}

func fileDescription(f *FileInfo) *xmpp.Element {
	file := xmpp.NewElementName("file")
	file.AppendElement(xmpp.NewElementName("name").SetText(f.Name))
	file.AppendElement(xmpp.NewElementName("size").SetText(strconv.FormatInt(f.Size, 10)))
	if len(f.Hash.Sum) > 0 {
		h := xmpp.NewElementNamespace("hash", extension.HashesNamespace)
		h.SetAttribute("algo", f.Hash.Algo)
		h.SetText(base64.StdEncoding.EncodeToString(f.Hash.Sum))
		file.AppendElement(h)
	}
	desc := xmpp.NewElementNamespace("description", extension.JingleFileTransfer)
	desc.AppendElement(file)
	return desc
}

func parseFileDescription(desc *xmpp.Element) (*FileInfo, error) {
	file := desc.Child("file")
	if file == nil {
		return nil, errors.Wrap(errMalformed, "missing file")
	}
	f := &FileInfo{}
	if n := file.Child("name"); n != nil {
		f.Name = strings.TrimSpace(n.Text())
	}
	if s := file.Child("size"); s != nil {
		size, err := strconv.ParseInt(strings.TrimSpace(s.Text()), 10, 64)
		if err != nil || size < 0 {
			return nil, errors.Wrap(errMalformed, "invalid file size")
		}
		f.Size = size
	}
	var hashes []HashValue
	for _, h := range file.ChildrenNamespace("hash", extension.HashesNamespace) {
		sum, err := base64.StdEncoding.DecodeString(strings.TrimSpace(h.Text()))
		if err != nil {
			continue
		}
		hashes = append(hashes, HashValue{Algo: h.Attribute("algo"), Sum: sum})
	}
	if hv, ok := strongestHash(hashes); ok {
		f.Hash = hv
	}
	return f, nil
}

func (t *s5bTransport) element() *xmpp.Element {
	e := xmpp.NewElementNamespace("transport", extension.JingleS5BNamespace)
	e.SetAttribute("sid", t.SID)
	if len(t.DstAddr) > 0 {
		e.SetAttribute("dstaddr", t.DstAddr)
		e.SetAttribute("mode", "tcp")
	}
	for _, c := range t.Candidates {
		ce := xmpp.NewElementName("candidate")
		ce.SetAttribute("cid", c.CID)
		ce.SetAttribute("host", c.Host)
		ce.SetAttribute("jid", c.JID)
		ce.SetAttribute("port", strconv.Itoa(c.Port))
		ce.SetAttribute("priority", strconv.FormatUint(uint64(c.Priority), 10))
		ce.SetAttribute("type", c.Type)
		e.AppendElement(ce)
	}
	switch {
	case len(t.CandidateUsed) > 0:
		e.AppendElement(xmpp.NewElementName("candidate-used").SetAttribute("cid", t.CandidateUsed))
	case t.CandidateError:
		e.AppendElement(xmpp.NewElementName("candidate-error"))
	case len(t.Activated) > 0:
		e.AppendElement(xmpp.NewElementName("activated").SetAttribute("cid", t.Activated))
	case t.ProxyError:
		e.AppendElement(xmpp.NewElementName("proxy-error"))
	}
	return e
}

func parseS5BTransport(elem *xmpp.Element) (*s5bTransport, error) {
	t := &s5bTransport{
		SID:     elem.Attribute("sid"),
		DstAddr: elem.Attribute("dstaddr"),
	}
	for _, ch := range elem.Children() {
		switch ch.Name() {
		case "candidate":
			port, err := strconv.Atoi(ch.Attribute("port"))
			if err != nil || port <= 0 || port > 0xffff {
				return nil, errors.Wrap(errMalformed, "invalid candidate port")
			}
			prio, _ := strconv.ParseUint(ch.Attribute("priority"), 10, 32)
			typ := ch.Attribute("type")
			if len(typ) == 0 {
				typ = candidateDirect
			}
			t.Candidates = append(t.Candidates, Candidate{
				CID:      ch.Attribute("cid"),
				Host:     ch.Attribute("host"),
				Port:     port,
				JID:      ch.Attribute("jid"),
				Priority: uint32(prio),
				Type:     typ,
			})
		case "candidate-used":
			t.CandidateUsed = ch.Attribute("cid")
		case "candidate-error":
			t.CandidateError = true
		case "activated":
			t.Activated = ch.Attribute("cid")
		case "proxy-error":
			t.ProxyError = true
		}
	}
	return t, nil
}

func (t *ibbTransport) element() *xmpp.Element {
	e := xmpp.NewElementNamespace("transport", extension.JingleIBBNamespace)
	e.SetAttribute("block-size", strconv.Itoa(t.BlockSize))
	e.SetAttribute("sid", t.SID)
	return e
}

func parseIBBTransport(elem *xmpp.Element) (*ibbTransport, error) {
	bs, err := strconv.Atoi(elem.Attribute("block-size"))
	if err != nil || bs <= 0 || bs > 0xffff {
		return nil, errors.Wrap(errMalformed, "invalid block size")
	}
	return &ibbTransport{SID: elem.Attribute("sid"), BlockSize: bs}, nil
}

// XEP-0047 payloads

func ibbOpen(sid string, blockSize int) *xmpp.Element {
	e := xmpp.NewElementNamespace("open", extension.IBBNamespace)
	e.SetAttribute("block-size", strconv.Itoa(blockSize))
	e.SetAttribute("sid", sid)
	e.SetAttribute("stanza", "iq")
	return e
}

func ibbData(sid string, seq uint16, data []byte) *xmpp.Element {
	e := xmpp.NewElementNamespace("data", extension.IBBNamespace)
	e.SetAttribute("seq", strconv.FormatUint(uint64(seq), 10))
	e.SetAttribute("sid", sid)
	e.SetText(base64.StdEncoding.EncodeToString(data))
	return e
}

func parseIBBData(elem *xmpp.Element) (uint16, []byte, error) {
	seq, err := strconv.ParseUint(elem.Attribute("seq"), 10, 16)
	if err != nil {
		return 0, nil, errors.Wrap(errMalformed, "invalid sequence number")
	}
	payload, err := base64.StdEncoding.DecodeString(strings.TrimSpace(elem.Text()))
	if err != nil {
		return 0, nil, errors.Wrap(errMalformed, "invalid block encoding")
	}
	return uint16(seq), payload, nil
}

func ibbClose(sid string) *xmpp.Element {
	return xmpp.NewElementNamespace("close", extension.IBBNamespace).SetAttribute("sid", sid)
}

// bytestreamsActivate asks a XEP-0065 proxy to start relaying sid towards target.
func bytestreamsActivate(sid, target string) *xmpp.Element {
	q := xmpp.NewElementNamespace("query", extension.BytestreamsNamespace)
	q.SetAttribute("sid", sid)
	q.AppendElement(xmpp.NewElementName("activate").SetText(target))
	return q
}
