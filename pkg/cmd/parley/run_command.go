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
	"os"

	"github.com/ortuman/parley/pkg/app"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connects every configured account and receives files until stopped",
		Args:  cobra.NoArgs,
		RunE:  runCommandFunc,
	}
}

func runCommandFunc(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFromCmd(cmd)
	if err != nil {
		return err
	}
	return app.New(cfg, os.Stdin, cmd.OutOrStdout()).Run()
}
