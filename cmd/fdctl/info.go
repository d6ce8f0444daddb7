package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hxcfe/floppytrack/mfm"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the opened image's resolved geometry",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cylinders: %d\n", img.NrCyls)
		fmt.Printf("sides:     %d\n", img.NrSides)
		fmt.Printf("encoding:  %s\n", syncModeName(img.SyncMode))
	},
}

func syncModeName(m mfm.SyncMode) string {
	switch m {
	case mfm.SyncFM:
		return "FM"
	case mfm.SyncMFM:
		return "MFM"
	default:
		return "none"
	}
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
