package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hxcfe/floppytrack/image"
)

// osFileHandle adapts an *os.File to image.FileHandle, the one
// conversion the engine's format-agnostic FileHandle contract needs
// to read a real image off disk instead of the in-memory handles the
// package's tests use.
type osFileHandle struct{ *os.File }

func (h osFileHandle) Size() (int64, error) {
	fi, err := h.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

var (
	imagePath   string
	imageFormat string
	img         *image.Image
)

var rootCmd = &cobra.Command{
	Use:   "fdctl",
	Short: "Inspect and drive floppy disk images through the track engine",
	Long: "fdctl is a developer inspector for the track engine. It opens an image\n" +
		"file directly and drives the same format handlers and track state\n" +
		"machine the engine uses in production, without a USB adapter attached.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if imagePath == "" {
			cobra.CheckErr(fmt.Errorf("--image is required"))
		}
		f, err := os.OpenFile(imagePath, os.O_RDWR, 0644)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("open %s: %w", imagePath, err))
		}
		fh := osFileHandle{f}

		format := image.Format(imageFormat)
		if format == "" {
			ext := strings.TrimPrefix(filepath.Ext(imagePath), ".")
			format = image.ByExtension(strings.ToLower(ext))
		}
		if format == "" {
			cobra.CheckErr(fmt.Errorf("cannot infer format from %q, pass --format", imagePath))
		}

		img, err = image.Open(format, fh)
		if err != nil {
			cobra.CheckErr(fmt.Errorf("open image: %w", err))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&imagePath, "image", "i", "", "path to the image file")
	rootCmd.PersistentFlags().StringVarP(&imageFormat, "format", "f", "", "image format (img, hfe, fdi, ...); inferred from extension if omitted")
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
