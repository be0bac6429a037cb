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

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github/sabouaram/dargo/archive"
	"github/sabouaram/dargo/config"
	"github/sabouaram/dargo/stream"
)

func newStatsCmd(g *globalFlags, loader *config.Loader) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print an archive's header fields without decoding its body",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loader.Current()

			f, err := stream.OpenFile(in, stream.ReadOnly)
			if err != nil {
				return err
			}

			opts := []archive.Option{
				archive.WithCompression(settings.Compression),
				archive.WithClearBlockSize(settings.ClearBlockSize),
			}
			if g.passphrase != "" {
				opts = append(opts, archive.WithPassphrase(g.passphrase))
			}

			r, err := archive.NewReader(f, opts...)
			if err != nil {
				return err
			}
			h := r.Header()

			label := color.New(color.FgCyan, color.Bold).SprintFunc()
			fmt.Printf("%s %d\n", label("version:"), h.Version)
			fmt.Printf("%s %v\n", label("cipher:"), cipherName(h.Cipher))
			fmt.Printf("%s %s\n", label("compression:"), h.Compression.String())
			fmt.Printf("%s %d\n", label("clear block size:"), h.ClearBlockSize)
			fmt.Printf("%s %d\n", label("catalogue offset:"), r.CatalogueOffset())

			return r.Close()
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "archive path")
	cmd.MarkFlagRequired("in")
	return cmd
}

func cipherName(c archive.Cipher) string {
	if c == archive.CipherNone {
		return "none"
	}
	return "aes-ctr-essiv"
}
