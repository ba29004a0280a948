/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	braille "github.com/blacktop/go-braille"
)

var (
	verbose   bool
	scale     int
	threshold int
	invert    bool
	baseWidth int
	filter    string
	text      string
	output    string
	copyOut   bool
	fit       bool
	workers   int
)

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

func init() {
	log.SetHandler(clihandler.Default)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.PersistentFlags().IntVarP(&scale, "scale", "s", braille.DefaultScalePercent, "Output width in percent of the base width")
	rootCmd.PersistentFlags().IntVarP(&threshold, "threshold", "t", braille.DefaultThreshold, "Gray cutoff (0-255); darker samples become dots")
	rootCmd.PersistentFlags().BoolVarP(&invert, "invert", "i", false, "Make bright samples into dots instead")
	rootCmd.PersistentFlags().IntVarP(&baseWidth, "base-width", "w", braille.DefaultBaseWidth, "Output width in cells at 100% scale")
	rootCmd.PersistentFlags().StringVarP(&filter, "filter", "f", "bilinear", fmt.Sprintf("Resize filter %v", braille.ResizerNames()))
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "Goroutines used to encode cells")

	rootCmd.Flags().StringVarP(&text, "text", "T", "", "Render text instead of an image")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Save the output to a file instead of printing it")
	rootCmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the output to the clipboard")
	rootCmd.Flags().BoolVar(&fit, "fit", false, "Lower the scale until the output fits the terminal width")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "braille [image]",
	Short: "Convert images and text to braille art",
	Long: `Convert an image (png, jpeg, gif, bmp, tiff, webp) or a line of text into
Unicode braille art. Use "-" to read the image from stdin.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
			braille.SetLogger(log.Log)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := newImage(args, cmd.InOrStdin())
		if err != nil {
			return err
		}

		p := params()
		if fit {
			p.ScalePercent = fitScale(p.ScalePercent, baseWidth, terminalWidth())
		}

		resizer, err := braille.ResizerByName(filter)
		if err != nil {
			return err
		}

		doc, err := img.Params(p).
			BaseWidth(baseWidth).
			Resizer(resizer).
			Workers(workers).
			Document()
		if err != nil {
			return fmt.Errorf("failed to convert: %w", err)
		}

		log.WithFields(log.Fields{
			"characters": doc.Length,
			"lines":      doc.Lines,
			"size":       doc.Dimensions.String(),
		}).Debug("Converted")

		if doc.Empty() {
			log.Warn("Output is empty; try another --threshold or --invert")
		}

		if copyOut {
			if err := copyToClipboard(doc.Text); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			log.Infof("Copied %d characters to the clipboard", doc.Length)
		}

		if output != "" {
			if err := braille.SaveDocument(output, doc.Text); err != nil {
				return err
			}
			log.Infof("Saved %d characters to %s", doc.Length, output)
			return nil
		}

		if !copyOut {
			fmt.Fprintln(cmd.OutOrStdout(), doc.Text)
		}
		return nil
	},
}

func params() braille.Params {
	return braille.Params{
		ScalePercent: scale,
		Threshold:    threshold,
		Invert:       invert,
	}
}

// newImage picks the input: --text, a path, or "-" for stdin
func newImage(args []string, stdin io.Reader) (*braille.Image, error) {
	switch {
	case text != "" && len(args) > 0:
		return nil, fmt.Errorf("pass either an image or --text, not both")
	case text != "":
		return braille.Text(text), nil
	case len(args) == 0:
		return nil, fmt.Errorf("an image path or --text is required")
	case args[0] == "-":
		return braille.From(stdin), nil
	}
	return braille.Open(args[0])
}

// fitScale caps scale so the output is at most cols cells wide. cols <= 0
// leaves scale unchanged.
func fitScale(scale, baseWidth, cols int) int {
	if cols <= 0 || baseWidth <= 0 {
		return scale
	}
	limit := cols * 100 / baseWidth
	if limit < scale {
		log.Debugf("Scale lowered from %d%% to %d%% to fit %d columns", scale, max(limit, 1), cols)
		return max(limit, 1)
	}
	return scale
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		log.Warn("--fit ignored: stdout is not a terminal")
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		log.WithError(err).Warn("--fit ignored: could not read terminal size")
		return 0
	}
	return w
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
