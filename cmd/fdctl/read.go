package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	readCyl  int
	readSide int
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Seek to a track and print its flux transition stream",
	Long:  "Seek to a track, run it through the format's read path, and report the\nresulting flux interval count and track length in ticks.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := img.SetupTrack(readCyl, readSide); err != nil {
			cobra.CheckErr(fmt.Errorf("setup track: %w", err))
		}
		intervals, tracklenTicks, err := img.ReadTrack()
		if err != nil {
			cobra.CheckErr(fmt.Errorf("read track: %w", err))
		}

		fmt.Printf("cyl=%d side=%d: %d flux intervals, track length %d ticks\n",
			readCyl, readSide, len(intervals), tracklenTicks)
		if verboseRead {
			for i, v := range intervals {
				fmt.Printf("%6d: %d\n", i, v)
			}
		}
	},
}

var verboseRead bool

func init() {
	readCmd.Flags().IntVarP(&readCyl, "cyl", "c", 0, "cylinder")
	readCmd.Flags().IntVarP(&readSide, "side", "s", 0, "side (0 or 1)")
	readCmd.Flags().BoolVarP(&verboseRead, "verbose", "v", false, "print every flux interval")
	rootCmd.AddCommand(readCmd)
}
