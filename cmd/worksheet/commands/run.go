// seehuhn.de/go/worksheet - a guided classroom worksheet
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"seehuhn.de/go/worksheet"
	"seehuhn.de/go/worksheet/export"
	"seehuhn.de/go/worksheet/script"
)

func runCmd(logger *zerolog.Logger) *cobra.Command {
	var (
		outDir    string
		scale     int
		maxPixels int
		preview   bool
	)

	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Replay a session script and write the exported images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := script.Load(args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			opt := sc.Options()
			opt.Logger = logger
			opt.Export = export.Pipeline{Scale: scale, MaxPixels: maxPixels}
			s := worksheet.New(opt)

			err = script.Run(cmd.Context(), s, sc, func(f *export.File) error {
				path := filepath.Join(outDir, f.Name)
				if err := os.WriteFile(path, f.Data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%dx%d)\n", path, f.Width, f.Height)
				return nil
			})
			if err != nil {
				return err
			}

			if preview {
				return writePreview(cmd, s, outDir)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&outDir, "out", "o", ".", "output directory")
	flags.IntVar(&scale, "scale", export.DefaultScale, "resolution multiplier of exported images (at least 2)")
	flags.IntVar(&maxPixels, "max-pixels", 0, "refuse to export images with more pixels (0 means no limit)")
	flags.BoolVar(&preview, "preview", false, "also write the live drawing and the on-screen summary")
	return cmd
}

// writePreview stores the current drawing and the on-screen summary card.
func writePreview(cmd *cobra.Command, s *worksheet.Session, dir string) error {
	type output struct {
		name string
		img  image.Image
	}
	outputs := []output{{"drawing.png", s.Surface().Preview()}}
	if doc, ok := s.Summary(); ok {
		outputs = append(outputs, output{"summary.png", doc.Paint(1)})
		fmt.Fprint(cmd.OutOrStdout(), doc.Text())
	}
	for _, o := range outputs {
		path := filepath.Join(dir, o.name)
		if err := writePNG(path, o.img); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
