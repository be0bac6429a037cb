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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github/sabouaram/dargo/archive"
	"github/sabouaram/dargo/config"
	"github/sabouaram/dargo/slicer"
	"github/sabouaram/dargo/stream"
)

func newExtractCmd(g *globalFlags, loader *config.Loader) *cobra.Command {
	var (
		in        string
		out       string
		sliceSize int64
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Decode an archive's logical stream to a single output file",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(g)
			settings := loader.Current()

			var under stream.Stream
			if sliceSize > 0 {
				r, err := slicer.NewReader(slicer.Config{
					Basename:  in,
					Ext:       ".dar",
					FirstSize: sliceSize,
					OtherSize: sliceSize,
					MinDigits: settings.MinDigits,
				})
				if err != nil {
					return err
				}
				under = r
			} else {
				f, err := stream.OpenFile(in, stream.ReadOnly)
				if err != nil {
					return err
				}
				under = f
			}

			opts := []archive.Option{
				archive.WithCompression(settings.Compression),
				archive.WithClearBlockSize(settings.ClearBlockSize),
				archive.WithWorkers(settings.Workers),
				archive.WithLogger(log),
			}
			if g.passphrase != "" {
				opts = append(opts, archive.WithPassphrase(g.passphrase))
			}

			r, err := archive.NewReader(under, opts...)
			if err != nil {
				return err
			}

			dst := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				dst = f
			}

			n, err := io.Copy(dst, readerAdapter{r})
			if err != nil {
				return err
			}
			if cerr := r.Close(); cerr != nil {
				return cerr
			}

			log.WithField("bytes", n).Info("archive extracted")
			if out != "" {
				fmt.Printf("wrote %d bytes to %s\n", n, out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "input archive path (basename when --slice-size is set)")
	cmd.Flags().StringVar(&out, "out", "", "output file path; defaults to stdout")
	cmd.Flags().Int64Var(&sliceSize, "slice-size", 0, "slice size in bytes; 0 reads a single unsliced file")
	cmd.MarkFlagRequired("in")
	return cmd
}

// readerAdapter gives archive.Reader the plain io.Reader shape io.Copy
// wants.
type readerAdapter struct{ r *archive.Reader }

func (a readerAdapter) Read(p []byte) (int, error) { return a.r.Read(p) }
