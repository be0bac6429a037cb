/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Command dargo is a thin cobra front end exercising the archive and
// datatree packages: create writes one archive from a set of input
// files, extract reads one back, and stats reports what a Header says
// about an archive without decoding its body. It does not reproduce a
// full archive-manager CLI surface (chain management, EA/FSA filtering,
// incremental diffing) — that is explicitly out of scope.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github/sabouaram/dargo/config"
	"github/sabouaram/dargo/logger"
)

// globalFlags holds the flags every subcommand shares. They are plain
// cobra flags and are not bound onto the config.Loader's viper instance;
// the archive tunables come from the config file and the environment.
type globalFlags struct {
	configFile string
	passphrase string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	loader := config.New()

	root := &cobra.Command{
		Use:           "dargo",
		Short:         "dargo builds and reads disk-archive-engine archives",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configFile, "config", "", "path to a YAML/TOML/JSON settings file")
	root.PersistentFlags().StringVar(&g.passphrase, "passphrase", "", "archive passphrase; empty means unencrypted")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "debug, info, warn, error or none")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if g.configFile != "" {
			if _, err := loader.Load(g.configFile); err != nil {
				return err
			}
		}
		return nil
	}

	root.AddCommand(
		newCreateCmd(g, loader),
		newExtractCmd(g, loader),
		newStatsCmd(g, loader),
	)
	return root
}

func newLogger(g *globalFlags) logger.Logger {
	lvl, err := logger.ParseLevel(g.logLevel)
	if err != nil {
		lvl = logger.InfoLevel
	}
	return logger.New(lvl, os.Stderr)
}
