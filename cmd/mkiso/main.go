// mkiso builds bootable ECMA-119 (ISO-9660 Level 1) disc images with Rock
// Ridge extensions, from one or more host directories.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mkiso",
	Short: "Build a Rock Ridge ISO-9660 image from one or more directories",
	Long: `mkiso builds a single bootable ISO-9660 Level 1 disc image from one or
more source directories. It always attaches Rock Ridge (SUSP/RRIP) POSIX
metadata, and can optionally embed an El Torito boot catalog, an MBR or
GRUB2 boot blob in the System Area, and a protective MS-DOS partition
table for hybrid optical/disk boot.

Examples:
  mkiso build -o image.iso ./rootfs
  mkiso build -o image.iso --eltorito-boot boot/eltorito.img --boot-info-table ./rootfs
  mkiso build -c manifest.yaml`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
