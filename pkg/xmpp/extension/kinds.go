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

// Protocol namespaces.
const (
	StreamManagementNamespace = "urn:xmpp:sm:3"
	PingNamespace             = "urn:xmpp:ping"
	ReceiptsNamespace         = "urn:xmpp:receipts"
	ChatMarkersNamespace      = "urn:xmpp:chat-markers:0"
	DelayNamespace            = "urn:xmpp:delay"
	CarbonsNamespace          = "urn:xmpp:carbons:2"
	ForwardNamespace          = "urn:xmpp:forward:0"
	MUCUserNamespace          = "http://jabber.org/protocol/muc#user"
	PubSubEventNamespace      = "http://jabber.org/protocol/pubsub#event"
	AvatarMetadataNamespace   = "urn:xmpp:avatar:metadata"
	RosterNamespace           = "jabber:iq:roster"
	JingleNamespace           = "urn:xmpp:jingle:1"
	JingleFileTransfer        = "urn:xmpp:jingle:apps:file-transfer:5"
	JingleS5BNamespace        = "urn:xmpp:jingle:transports:s5b:1"
	JingleIBBNamespace        = "urn:xmpp:jingle:transports:ibb:1"
	BytestreamsNamespace      = "http://jabber.org/protocol/bytestreams"
	IBBNamespace              = "http://jabber.org/protocol/ibb"
	HashesNamespace           = "urn:xmpp:hashes:2"
)

// Registered extension types.
const (
	SMEnable    Type = "sm.enable"
	SMEnabled   Type = "sm.enabled"
	SMResume    Type = "sm.resume"
	SMResumed   Type = "sm.resumed"
	SMFailed    Type = "sm.failed"
	SMRequest   Type = "sm.r"
	SMAnswer    Type = "sm.a"
	SMFeature   Type = "sm.feature"
	Ping        Type = "ping"
	Request     Type = "receipts.request"
	Received    Type = "receipts.received"
	Markable    Type = "markers.markable"
	Displayed   Type = "markers.displayed"
	Acknowledge Type = "markers.acknowledged"
	Delay       Type = "delay"
	CarbonsSent Type = "carbons.sent"
	CarbonsRecv Type = "carbons.received"
	MUCUser     Type = "muc.user"
	PubSubEvent Type = "pubsub.event"
	AvatarMeta  Type = "avatar.metadata"
	Roster      Type = "roster.query"
	Jingle      Type = "jingle"
	FileDesc    Type = "jingle.file-transfer"
	S5BTrans    Type = "jingle.s5b"
	IBBTrans    Type = "jingle.ibb"
	Bytestreams Type = "bytestreams.query"
	IBBOpen     Type = "ibb.open"
	IBBData     Type = "ibb.data"
	IBBClose    Type = "ibb.close"
	Hash        Type = "hashes.hash"
	HashUsed    Type = "hashes.hash-used"
)

// Default is the process-wide registry of known extensions.
var Default = NewRegistry(
	Entry{Kind{"enable", StreamManagementNamespace}, SMEnable},
	Entry{Kind{"enabled", StreamManagementNamespace}, SMEnabled},
	Entry{Kind{"resume", StreamManagementNamespace}, SMResume},
	Entry{Kind{"resumed", StreamManagementNamespace}, SMResumed},
	Entry{Kind{"failed", StreamManagementNamespace}, SMFailed},
	Entry{Kind{"r", StreamManagementNamespace}, SMRequest},
	Entry{Kind{"a", StreamManagementNamespace}, SMAnswer},
	Entry{Kind{"sm", StreamManagementNamespace}, SMFeature},
	Entry{Kind{"ping", PingNamespace}, Ping},
	Entry{Kind{"request", ReceiptsNamespace}, Request},
	Entry{Kind{"received", ReceiptsNamespace}, Received},
	Entry{Kind{"markable", ChatMarkersNamespace}, Markable},
	Entry{Kind{"displayed", ChatMarkersNamespace}, Displayed},
	Entry{Kind{"acknowledged", ChatMarkersNamespace}, Acknowledge},
	Entry{Kind{"delay", DelayNamespace}, Delay},
	Entry{Kind{"sent", CarbonsNamespace}, CarbonsSent},
	Entry{Kind{"received", CarbonsNamespace}, CarbonsRecv},
	Entry{Kind{"x", MUCUserNamespace}, MUCUser},
	Entry{Kind{"event", PubSubEventNamespace}, PubSubEvent},
	Entry{Kind{"metadata", AvatarMetadataNamespace}, AvatarMeta},
	Entry{Kind{"query", RosterNamespace}, Roster},
	Entry{Kind{"jingle", JingleNamespace}, Jingle},
	Entry{Kind{"description", JingleFileTransfer}, FileDesc},
	Entry{Kind{"transport", JingleS5BNamespace}, S5BTrans},
	Entry{Kind{"transport", JingleIBBNamespace}, IBBTrans},
	Entry{Kind{"query", BytestreamsNamespace}, Bytestreams},
	Entry{Kind{"open", IBBNamespace}, IBBOpen},
	Entry{Kind{"data", IBBNamespace}, IBBData},
	Entry{Kind{"close", IBBNamespace}, IBBClose},
	Entry{Kind{"hash", HashesNamespace}, Hash},
	Entry{Kind{"hash-used", HashesNamespace}, HashUsed},
)
