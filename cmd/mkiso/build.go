package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bootiso/mkiso/iso9660"
)

var (
	flagOutput               string
	flagManifest             string
	flagElToritoBoot         string
	flagNoBoot               bool
	flagBootLoadSize         uint16
	flagBootInfoTable        bool
	flagGrub2BootInfo        bool
	flagEmbeddedBoot         string
	flagGrub2MBR             string
	flagProtectiveMSDOSLabel bool
	flagElToritoID           string
	flagVerbose              bool
)

var buildCmd = &cobra.Command{
	Use:   "build [input_dir...]",
	Short: "Assemble an ISO-9660 image from one or more directories",
	Args:  cobra.ArbitraryArgs,
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output image path")
	buildCmd.Flags().StringVarP(&flagManifest, "config", "c", "", "YAML manifest file (replaces the other flags except --output, --eltorito-id and input dirs)")
	buildCmd.Flags().StringVar(&flagElToritoBoot, "eltorito-boot", "", "relative path of the El Torito boot image within the tree")
	buildCmd.Flags().BoolVar(&flagNoBoot, "no-boot", false, "mark the default catalog entry non-bootable")
	buildCmd.Flags().Uint16Var(&flagBootLoadSize, "boot-load-size", 4, "minimum sectors of 512 bytes to report loading at boot (actual value floors at the boot image's own size)")
	buildCmd.Flags().BoolVar(&flagBootInfoTable, "boot-info-table", false, "patch the boot image with an info table at offset 0x08")
	buildCmd.Flags().BoolVar(&flagGrub2BootInfo, "grub2-boot-info", false, "patch the boot image with GRUB2 info at offset 0x9F4")
	buildCmd.Flags().StringVar(&flagEmbeddedBoot, "embedded-boot", "", "blob to copy into the System Area")
	buildCmd.Flags().StringVar(&flagGrub2MBR, "grub2-mbr", "", "blob to copy into the System Area and patch at 0x1B0")
	buildCmd.Flags().BoolVar(&flagProtectiveMSDOSLabel, "protective-msdos-label", false, "overlay a protective MS-DOS partition table")
	buildCmd.Flags().StringVar(&flagElToritoID, "eltorito-id", "", `boot catalog validation entry ID field, or "auto" to generate a random one`)
	buildCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func runBuild(cmd *cobra.Command, args []string) error {
	log, err := newLogger(flagVerbose)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	defer log.Sync()

	cfg, err := resolveConfig(args)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if err := iso9660.Build(cfg, log); err != nil {
		return err
	}

	info, err := os.Stat(cfg.Output)
	if err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", cfg.Output, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

func resolveConfig(inputDirs []string) (iso9660.Config, error) {
	if flagManifest != "" {
		cfg, err := iso9660.LoadManifestFile(flagManifest)
		if err != nil {
			return iso9660.Config{}, err
		}
		if flagOutput != "" {
			cfg.Output = flagOutput
		}
		if len(inputDirs) > 0 {
			cfg.InputDirs = inputDirs
		}
		applyElToritoIDFlag(cfg)
		return *cfg, nil
	}

	cfg := iso9660.DefaultConfig()
	cfg.Output = flagOutput
	cfg.InputDirs = inputDirs
	cfg.ElToritoBoot = flagElToritoBoot
	cfg.NoBoot = flagNoBoot
	cfg.BootLoadSize = flagBootLoadSize
	cfg.BootInfoTable = flagBootInfoTable
	cfg.Grub2BootInfo = flagGrub2BootInfo
	cfg.EmbeddedBoot = flagEmbeddedBoot
	cfg.Grub2MBR = flagGrub2MBR
	cfg.ProtectiveMSDOSLabel = flagProtectiveMSDOSLabel
	applyElToritoIDFlag(&cfg)
	return cfg, nil
}

// applyElToritoIDFlag honors --eltorito-id="auto" by generating a random
// UUID for the boot catalog's validation entry; any other value is used
// verbatim.
func applyElToritoIDFlag(cfg *iso9660.Config) {
	switch flagElToritoID {
	case "":
		return
	case "auto":
		cfg.GenerateElToritoID()
	default:
		cfg.ElToritoID = flagElToritoID
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}
