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
	"fmt"
	"runtime"

	"github.com/ortuman/parley/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of parley",
		Run:   versionCommandFunc,
	}
}

func versionCommandFunc(cmd *cobra.Command, _ []string) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "parley version:", version.Version)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "go version:", runtime.Version())
}
