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
	"github.com/ortuman/parley/pkg/app"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const redacted = "********"

func newConfigCommand() *cobra.Command {
	cc := &cobra.Command{
		Use:   "config <subcommand>",
		Short: "Configuration related commands",
	}
	cc.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Prints the effective configuration as YAML, with passwords redacted",
		Args:  cobra.NoArgs,
		RunE:  configDumpCommandFunc,
	})
	return cc
}

func configDumpCommandFunc(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigFromCmd(cmd)
	if err != nil {
		return err
	}
	b, err := dumpConfig(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}

func dumpConfig(cfg *app.Config) ([]byte, error) {
	out := *cfg
	out.Accounts = append(out.Accounts[:0:0], cfg.Accounts...)
	for i := range out.Accounts {
		if len(out.Accounts[i].Password) > 0 {
			out.Accounts[i].Password = redacted
		}
	}
	return yaml.Marshal(&out)
}
