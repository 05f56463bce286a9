package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/errors"
)

// configShowCommand prints the effective settings as YAML, preceded by the
// file they were loaded from.
func configShowCommand(configPath string, o Overrides, out io.Writer) error {
	cfg, path, err := loadSettings(configPath, o)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	source := path
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(out, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}

// configTarget picks the file `config set` edits: --config, the global file
// with --global, the nearest existing .pimon.yaml, or a new one in the
// working directory.
func configTarget(configPath string, global bool) (string, error) {
	if configPath != "" {
		return config.ExpandTilde(configPath), nil
	}
	if global {
		path := config.GlobalConfigPath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't create "+filepath.Dir(path),
				"Check permissions on your home directory")
		}
		return path, nil
	}

	// Find falls back to the global file; a plain set should stay local.
	if path, err := config.Find(""); err == nil && path != "" && path != config.GlobalConfigPath() {
		return path, nil
	}
	return filepath.Join(".", config.ConfigFileName), nil
}

// configSetCommand changes one key and reports which file was written.
func configSetCommand(configPath string, global bool, key, value string, out io.Writer) error {
	path, err := configTarget(configPath, global)
	if err != nil {
		return err
	}
	if err := config.SetValue(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(out, "Set %s = %s in %s\n", key, value, path)
	return nil
}
