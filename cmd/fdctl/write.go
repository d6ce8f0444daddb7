package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hxcfe/floppytrack/image"
)

var (
	writeCyl  int
	writeSide int
)

var writeCmd = &cobra.Command{
	Use:   "write BITCELL_FILE",
	Short: "Seek to a track and write a raw bitcell stream from BITCELL_FILE",
	Long:  "Reads a raw MFM/FM bitcell stream from BITCELL_FILE and hands it to the\nformat's write path, the same way the engine's write-complete interrupt\nwould for a real write.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("read %s: %w", args[0], err))
		}
		if err := img.SetupTrack(writeCyl, writeSide); err != nil {
			cobra.CheckErr(fmt.Errorf("setup track: %w", err))
		}
		if err := img.WriteTrack(data); err != nil {
			cobra.CheckErr(fmt.Errorf("write track: %w", err))
		}

		if reporter, ok := img.State.(image.CorruptionReporter); ok {
			for _, c := range reporter.LastCorruptions() {
				fmt.Printf("corruption: sector %d: %s\n", c.SectorID, c.Reason)
			}
		}
		fmt.Printf("wrote cyl=%d side=%d from %s\n", writeCyl, writeSide, args[0])
	},
}

func init() {
	writeCmd.Flags().IntVarP(&writeCyl, "cyl", "c", 0, "cylinder")
	writeCmd.Flags().IntVarP(&writeSide, "side", "s", 0, "side (0 or 1)")
	rootCmd.AddCommand(writeCmd)
}
