// Package config loads the optional TOML document of type-table
// overrides the matcher consults before its built-in host-profile
// tables (spec §6 "Configuration": "IMG.CFG ... may override geometry
// per file-size range, producing a dynamically built type table that
// is passed into the matcher in the same shape as the built-ins").
//
// Grounded directly on the teacher's config/config.go: the same
// config-path resolution (XDG-ish on Windows, dotfile in $HOME
// elsewhere), the same "write the embedded default on first run"
// behavior, and github.com/BurntSushi/toml for decoding.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/hxcfe/floppytrack/typetable"
)

//go:embed floppy.toml
var defaultConfigData []byte

// Override is one [[override]] entry: a type-table row plus the
// file-size class it is tried against, decoded straight off the TOML
// document rather than the built-in compile-time tables.
type Override struct {
	FileSizeClass       string `toml:"file_size_class"` // "40" or "80"
	NrSecs              int    `toml:"nr_secs"`
	NrSides             int    `toml:"nr_sides"`
	HasIAM              bool   `toml:"has_iam"`
	Gap3                int    `toml:"gap3"`
	Interleave          int    `toml:"interleave"`
	SecSizeCode         int    `toml:"sec_size_code"`
	Base                int    `toml:"base"`
	InterTrackNumbering bool   `toml:"inter_track_numbering"`
	Skew                int    `toml:"skew"`
	RPM                 int    `toml:"rpm"`
	Layout              string `toml:"layout"`
	SkewCylsOnly        bool   `toml:"skew_cyls_only"`
	FM                  bool   `toml:"fm"`
}

// Config is the top-level TOML document shape.
type Config struct {
	Override []Override `toml:"override"`
}

// configPath determines the config file path based on the operating system.
func configPath() (string, error) {
	var configDir string
	var err error

	switch runtime.GOOS {
	case "windows":
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "floppy")
	default:
		configDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
	}

	return filepath.Join(configDir, ".floppy"), nil
}

// Load reads the user's type-table override file, creating it from
// the embedded default on first run, and returns it as a
// typetable.Table in the same shape the built-in tables use, ready to
// prepend to a host-profile table before the matcher walk (ties are
// resolved by table order; overrides go first since they exist to
// pre-empt a built-in entry).
func Load() (typetable.Table, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
		if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
			return nil, fmt.Errorf("failed to create default config file at %s: %w", path, err)
		}
	}

	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config at %s: %w", path, err)
	}

	return buildTable(conf.Override)
}

// buildTable converts decoded Override rows into typetable.Entry
// values, validating the handful of enumerated fields the built-in
// tables encode as Go constants.
func buildTable(overrides []Override) (typetable.Table, error) {
	table := make(typetable.Table, 0, len(overrides))
	for i, o := range overrides {
		class, err := cylsClass(o.FileSizeClass)
		if err != nil {
			return nil, fmt.Errorf("config: override %d: %w", i, err)
		}
		layout, err := layoutFor(o.Layout)
		if err != nil {
			return nil, fmt.Errorf("config: override %d: %w", i, err)
		}
		if o.NrSides != 1 && o.NrSides != 2 {
			return nil, fmt.Errorf("config: override %d: nr_sides must be 1 or 2, got %d", i, o.NrSides)
		}
		if o.NrSecs <= 0 {
			return nil, fmt.Errorf("config: override %d: nr_secs must be positive", i)
		}
		rpm := o.RPM
		if rpm == 0 {
			rpm = 300
		}

		table = append(table, typetable.Entry{
			NrSecs:              o.NrSecs,
			NrSides:             o.NrSides,
			HasIAM:              o.HasIAM,
			Gap3:                o.Gap3,
			Interleave:          o.Interleave,
			SecSizeCode:         o.SecSizeCode,
			Base:                o.Base,
			InterTrackNumbering: o.InterTrackNumbering,
			Skew:                o.Skew,
			CylsClass:           class,
			RPM:                 rpm,
			Layout:              layout,
			SkewCylsOnly:        o.SkewCylsOnly,
			FM:                  o.FM,
		})
	}
	return table, nil
}

func cylsClass(s string) (typetable.CylsClass, error) {
	switch s {
	case "40":
		return typetable.Cyls40, nil
	case "80":
		return typetable.Cyls80, nil
	default:
		return 0, fmt.Errorf("file_size_class must be \"40\" or \"80\", got %q", s)
	}
}

func layoutFor(s string) (typetable.Layout, error) {
	switch s {
	case "", "interleaved":
		return typetable.Interleaved, nil
	case "interleaved_swap_sides":
		return typetable.InterleavedSwapSides, nil
	case "sequential_reverse_side1":
		return typetable.SequentialReverseSide1, nil
	default:
		return 0, fmt.Errorf("unknown layout %q", s)
	}
}

// WithOverrides prepends an override table ahead of a built-in
// host-profile table, so the matcher tries operator-supplied
// geometries before falling back to the compiled-in defaults.
func WithOverrides(overrides, builtin typetable.Table) typetable.Table {
	out := make(typetable.Table, 0, len(overrides)+len(builtin))
	out = append(out, overrides...)
	out = append(out, builtin...)
	return out
}
