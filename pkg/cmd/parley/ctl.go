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
	"os"
	"time"

	"github.com/ortuman/parley/pkg/app"
	"github.com/ortuman/parley/pkg/util/crashreporter"
	"github.com/ortuman/parley/pkg/version"
	"github.com/spf13/cobra"
)

const (
	cliName        = "parley"
	cliDescription = "An XMPP client engine with Jingle file transfer."

	defaultConfigFile      = "config.yaml"
	defaultTransferTimeout = 30 * time.Minute
)

// GlobalFlags are flags that defined globally and are inherited to all sub-commands.
type GlobalFlags struct {
	ConfigFile string
}

var globalFlags = GlobalFlags{}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           cliName,
		Short:         cliDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", defaultConfigFile, "configuration file path")

	rootCmd.AddCommand(
		newRunCommand(),
		newSendFileCommand(),
		newConfigCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Start runs parley command line.
func Start() error {
	rootCmd := newRootCommand()
	// Make help just show the usage
	rootCmd.SetHelpTemplate(`{{.UsageString}}`)
	return rootCmd.Execute()
}

// MustStart is like Start but exiting in case an error occurs.
func MustStart() {
	if err := crashreporter.Init(version.Version.String()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	if err := Start(); err != nil {
		ExitWithError(ExitError, err)
	}
}

func loadConfigFromCmd(cmd *cobra.Command) (*app.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	// if present, override config file path with env var
	if envCfgFile := os.Getenv(app.EnvConfigFile); len(envCfgFile) > 0 {
		configFile = envCfgFile
	}
	return app.LoadConfig(configFile)
}

func init() {
	cobra.EnablePrefixMatching = true
}
