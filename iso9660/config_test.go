package iso9660

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, uint16(4), cfg.BootLoadSize)
	assert.Equal(t, "ISOIMAGE", cfg.VolumeIdentifier)
}

func TestLoadManifestFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.yaml")
	content := "output: out.iso\ninput_files:\n  - ./rootfs\nboot_load_size: 8\n"
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0o644))

	cfg, err := LoadManifestFile(manifest)
	require.NoError(t, err)
	assert.Equal(t, "out.iso", cfg.Output)
	assert.Equal(t, []string{"./rootfs"}, cfg.InputDirs)
	assert.Equal(t, uint16(8), cfg.BootLoadSize)
	assert.Equal(t, "ISOIMAGE", cfg.VolumeIdentifier, "unset fields keep DefaultConfig values")
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "missing output and input dirs")

	cfg.Output = "out.iso"
	cfg.InputDirs = []string{"."}
	assert.NoError(t, cfg.Validate())
}

func TestElToritoEnabled(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.ElToritoEnabled())
	cfg.ElToritoBoot = "boot/eltorito.img"
	assert.True(t, cfg.ElToritoEnabled())
}

func TestGenerateElToritoID(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.ElToritoID)

	cfg.GenerateElToritoID()
	assert.NotEmpty(t, cfg.ElToritoID)

	other := DefaultConfig()
	other.GenerateElToritoID()
	assert.NotEqual(t, cfg.ElToritoID, other.ElToritoID)
}
