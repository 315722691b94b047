package iso9660

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config is the configuration record the orchestrator consumes. It is
// built by the CLI layer from flags, or loaded from a YAML manifest via
// LoadManifestFile — the core never parses arguments itself.
type Config struct {
	Output    string   `yaml:"output"`
	InputDirs []string `yaml:"input_files"`

	// ElToritoBoot is the relative path, within the imported tree, of the
	// El Torito boot image. Empty disables El Torito entirely.
	ElToritoBoot string `yaml:"eltorito_boot"`
	NoBoot       bool   `yaml:"no_boot"`

	// BootLoadSize is the minimum number of 512-byte sectors the catalog's
	// Default Entry reports loading at boot; the actual value is
	// max(BootLoadSize, ceil(boot image size / 512)). The spec's default is 4.
	BootLoadSize  uint16 `yaml:"boot_load_size"`
	BootInfoTable bool   `yaml:"boot_info_table"`
	Grub2BootInfo bool   `yaml:"grub2_boot_info"`

	// EmbeddedBoot is a path to a blob copied verbatim into the System Area.
	EmbeddedBoot string `yaml:"embedded_boot"`
	// Grub2MBR is a path to a blob copied into the System Area and then
	// patched with a boot-sector pointer at offset 0x1B0.
	Grub2MBR             string `yaml:"grub2_mbr"`
	ProtectiveMSDOSLabel bool   `yaml:"protective_msdos_label"`

	// ElToritoID, if set, is written into the boot catalog validation
	// entry's 24-byte ID field. Left zero by default for byte-exact parity.
	ElToritoID string `yaml:"eltorito_id"`

	// VolumeIdentifier defaults to "ISOIMAGE" padded with spaces.
	VolumeIdentifier string `yaml:"volume_identifier"`
}

// DefaultConfig returns a Config with every documented default applied.
func DefaultConfig() Config {
	return Config{
		BootLoadSize:     4,
		VolumeIdentifier: "ISOIMAGE",
	}
}

// LoadManifestFile reads a YAML manifest from path and overlays it onto
// DefaultConfig, returning the merged result.
func LoadManifestFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate rejects configurations the orchestrator cannot act on.
func (c Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("config: output path is required")
	}
	if len(c.InputDirs) == 0 {
		return fmt.Errorf("config: at least one input directory is required")
	}
	if c.BootLoadSize == 0 {
		return fmt.Errorf("config: boot_load_size must be non-zero")
	}
	return nil
}

// ElToritoEnabled reports whether the configuration requests an El Torito
// boot catalog.
func (c Config) ElToritoEnabled() bool {
	return c.ElToritoBoot != ""
}

// GenerateElToritoID fills in ElToritoID with a fresh random UUID, for
// callers that want a unique boot catalog ID rather than the zero-value
// default. The orchestrator never calls this on its own — byte-exact output
// requires ElToritoID to stay whatever the caller explicitly set.
func (c *Config) GenerateElToritoID() {
	c.ElToritoID = uuid.NewString()
}
