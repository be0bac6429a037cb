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
	"path/filepath"

	"github.com/spf13/cobra"

	"github/sabouaram/dargo/archive"
	"github/sabouaram/dargo/config"
	"github/sabouaram/dargo/datatree"
	"github/sabouaram/dargo/slicer"
	"github/sabouaram/dargo/stream"
)

// archiveWriterAdapter gives archive.Writer the plain io.Writer shape
// io.Copy wants, since WriteFile's signature already matches io.Writer's
// but under a different method name.
type archiveWriterAdapter struct{ w *archive.Writer }

func (a archiveWriterAdapter) Write(p []byte) (int, error) { return a.w.WriteFile(p) }

type simpleCatalogue []datatree.CatalogueEntry

func (c simpleCatalogue) Entries() []datatree.CatalogueEntry { return c }

func newCreateCmd(g *globalFlags, loader *config.Loader) *cobra.Command {
	var (
		out       string
		sliceSize int64
	)

	cmd := &cobra.Command{
		Use:   "create [files...]",
		Short: "Write a new archive from one or more input files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(g)
			settings := loader.Current()

			var under stream.Stream
			if sliceSize > 0 {
				w, err := slicer.NewWriter(slicer.Config{
					Basename:  out,
					Ext:       ".dar",
					DataName:  slicer.NewLabel(),
					FirstSize: sliceSize,
					OtherSize: sliceSize,
					MinDigits: settings.MinDigits,
				})
				if err != nil {
					return err
				}
				under = w
			} else {
				f, err := stream.CreateFile(out, stream.WriteOnly)
				if err != nil {
					return err
				}
				under = f
			}

			opts := []archive.Option{
				archive.WithCompression(settings.Compression),
				archive.WithClearBlockSize(settings.ClearBlockSize),
				archive.WithWorkers(settings.Workers),
				archive.WithMinHoleSize(settings.MinHoleSize),
				archive.WithLogger(log),
			}
			if g.passphrase != "" {
				opts = append(opts,
					archive.WithPassphrase(g.passphrase),
					archive.WithIterations(settings.Iterations),
					archive.WithSaltSize(settings.SaltSize),
				)
			}

			w, err := archive.NewWriter(under, opts...)
			if err != nil {
				return err
			}

			entries, err := writeInputs(w, args)
			if err != nil {
				return err
			}

			if err := w.Close(); err != nil {
				return err
			}

			tree := datatree.New()
			tree.AddArchive(simpleCatalogue(entries), 1)

			log.WithField("catalogue_offset", w.CatalogueOffset()).Info("archive created")
			fmt.Printf("wrote %d entries to %s (catalogue offset %d)\n", len(entries), out, w.CatalogueOffset())
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output archive path (basename when --slice-size is set)")
	cmd.Flags().Int64Var(&sliceSize, "slice-size", 0, "slice size in bytes; 0 writes a single unsliced file")
	cmd.MarkFlagRequired("out")
	return cmd
}

// writeInputs writes each input file's path and size as a catalogue line,
// then its content, onto the same logical stream, and returns the
// datatree entries describing what was written. The catalogue's own
// on-disk structure is an external collaborator this command does not
// attempt to reproduce; this is a minimal stand-in good enough to
// exercise archive.Writer end to end.
func writeInputs(w *archive.Writer, paths []string) ([]datatree.CatalogueEntry, error) {
	entries := make([]datatree.CatalogueEntry, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		rel := filepath.ToSlash(filepath.Clean(p))
		if _, err := w.WriteCatalogue([]byte(fmt.Sprintf("%s\t%d\n", rel, info.Size()))); err != nil {
			return nil, err
		}

		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(archiveWriterAdapter{w}, f)
		f.Close()
		if err != nil {
			return nil, err
		}

		entries = append(entries, datatree.CatalogueEntry{
			Path:     rel,
			HasData:  true,
			DataDate: info.ModTime(),
		})
	}
	return entries, nil
}
