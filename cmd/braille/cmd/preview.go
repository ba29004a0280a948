package cmd

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/spf13/cobra"

	braille "github.com/blacktop/go-braille"
	"github.com/blacktop/go-braille/internal/tui"
)

func init() {
	previewCmd.Flags().StringVarP(&text, "text", "T", "", "Start in text mode with this text")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview [image]",
	Short: "Tune scale, threshold and invert interactively",
	Long: `Open an interactive preview. Without an image it starts in text mode.

Keys: tab image/text, esc edit/controls, +/- scale, [/] threshold, i invert,
t theme, c copy, s save to braille-art.txt, q quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resizer, err := braille.ResizerByName(filter)
		if err != nil {
			return err
		}

		opts := tui.Options{
			Text:      text,
			Params:    params(),
			Resizer:   resizer,
			BaseWidth: baseWidth,
			Workers:   workers,
		}

		if len(args) > 0 {
			var img image.Image
			img, err = braille.DecodeFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			opts.Image = img
			opts.Name = filepath.Base(args[0])
		}

		return tui.Run(opts)
	},
}
