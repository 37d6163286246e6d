// Package config loads the editor configuration. The core consumes the
// resolved record; only the shell calls Load.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the resolved configuration record.
type Config struct {
	Theme  string `toml:"theme"`
	Editor Editor `toml:"editor"`
	// Keymap is decoded lazily by the key binding layer; its shape is not
	// the core's business.
	Keymap toml.Primitive `toml:"keymap"`
}

// Editor holds behavior settings.
type Editor struct {
	Scrolloff  int        `toml:"scrolloff"`
	TabWidth   int        `toml:"tab-width"`
	SoftWrap   bool       `toml:"soft-wrap"`
	AutoReload AutoReload `toml:"auto-reload"`
	LSP        LSP        `toml:"lsp"`
}

// AutoReload controls reacting to external file changes.
type AutoReload struct {
	Enable           bool `toml:"enable"`
	PromptIfModified bool `toml:"prompt-if-modified"`
}

// LSP holds language server toggles.
type LSP struct {
	AutoSignatureHelp bool `toml:"auto-signature-help"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: Editor{
			Scrolloff: 3,
			TabWidth:  4,
			AutoReload: AutoReload{
				Enable:           true,
				PromptIfModified: true,
			},
			LSP: LSP{AutoSignatureHelp: true},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults;
// a malformed file is an error. The returned metadata lets the keymap
// layer decode its primitive later.
func Load(path string) (Config, toml.MetaData, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), toml.MetaData{}, nil
		}
		return Config{}, toml.MetaData{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, meta, nil
}
