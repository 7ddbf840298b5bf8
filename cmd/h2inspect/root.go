// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
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

	"github.com/spf13/cobra"

	"github.com/packetd/h2codec/common"
	"github.com/packetd/h2codec/confengine"
	"github.com/packetd/h2codec/logger"
)

// version/gitHash/buildTime are overridden at build time via -ldflags, the
// way packetd/cmd embeds them.
var (
	version   string
	gitHash   string
	buildTime string
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "h2inspect",
	Short: "Decode HTTP/2 frame and HPACK header block captures",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			return
		}
		cfg, err := confengine.LoadConfigPath(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		var logOpt logger.Options
		if err := cfg.UnpackChild("logger", &logOpt); err != nil {
			fmt.Fprintf(os.Stderr, "failed to unpack logger config: %v\n", err)
			os.Exit(1)
		}
		logger.SetOptions(logOpt)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (logger options)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(decodeCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s (%s) built %s\n", common.App, version, gitHash, buildTime)
	},
}

// Execute runs the root command, exiting the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
