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

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ortuman/parley/pkg/app"
	"github.com/ortuman/parley/pkg/jingle"
	"github.com/ortuman/parley/pkg/xmpp/jid"
	"github.com/spf13/cobra"
)

var transferTimeout = defaultTransferTimeout

func newSendFileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-file <account> <peer full jid> <path>",
		Short: "Sends a file to a peer and waits for the transfer outcome",
		Args:  cobra.ExactArgs(3),
		Run:   sendFileCommandFunc,
	}
	cmd.Flags().DurationVar(&transferTimeout, "timeout", defaultTransferTimeout, "maximum transfer duration, including connection")
	return cmd
}

func sendFileCommandFunc(cmd *cobra.Command, args []string) {
	from, peer, err := parseSendFileArgs(args)
	if err != nil {
		ExitWithError(ExitBadArgs, err)
	}
	cfg, err := loadConfigFromCmd(cmd)
	if err != nil {
		ExitWithError(ExitError, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), transferTimeout)
	defer cancel()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reason, err := app.New(cfg, os.Stdin, cmd.OutOrStdout()).SendFile(ctx, from, peer, args[2])
	if err != nil {
		ExitWithError(ExitError, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "transfer finished: %s\n", reason)

	if reason != jingle.ReasonSuccess {
		os.Exit(ExitTransferFailed)
	}
}

func parseSendFileArgs(args []string) (from, peer jid.JID, err error) {
	from, err = jid.Parse(args[0])
	if err != nil {
		return jid.JID{}, jid.JID{}, fmt.Errorf("invalid account %q: %v", args[0], err)
	}
	peer, err = jid.Parse(args[1])
	if err != nil {
		return jid.JID{}, jid.JID{}, fmt.Errorf("invalid peer %q: %v", args[1], err)
	}
	if !peer.IsFull() {
		return jid.JID{}, jid.JID{}, fmt.Errorf("peer %q must be a full jid", args[1])
	}
	return from, peer, nil
}
