package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rileyhilliard/pimon/internal/errors"
	"gopkg.in/yaml.v3"
)

// Keys lists the settable top-level keys.
var Keys = []string{
	"url",
	"interval",
	"poll_interval",
	"connect_timeout",
	"history",
	"frame_interval",
	"color",
}

// IsKey reports whether key is one of Keys.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// SetValue writes key: value into the config file at configPath, preserving
// the existing structure and comments. The file is created if missing. The
// result must still pass Validate or nothing is written.
func SetValue(configPath, key, value string) error {
	if !IsKey(key) {
		known := append([]string(nil), Keys...)
		sort.Strings(known)
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key '%s'", key),
			"Known keys: "+strings.Join(known, ", "))
	}

	var root yaml.Node
	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		data = nil
	case err != nil:
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check file permissions on "+configPath)
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, &root); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to parse config file",
				"Fix the YAML syntax in "+configPath)
		}
	}
	if root.Kind == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return errors.New(errors.ErrConfig,
			"Config file is not a YAML mapping",
			"Expected 'key: value' pairs at the top level of "+configPath)
	}

	doc := root.Content[0]
	if node := findMapValue(doc, key); node != nil {
		node.Kind = yaml.ScalarNode
		node.Tag = ""
		node.Value = value
		node.Content = nil
	} else {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: value},
		)
	}

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	encoder.Close()

	// Round-trip through the loader so a bad value never lands on disk.
	tmp, err := os.CreateTemp("", "pimon-*.yaml")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to stage config", "")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(buf.String()); err != nil {
		tmp.Close()
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to stage config", "")
	}
	tmp.Close()

	cfg, err := Load(tmp.Name())
	if err != nil {
		return err
	}
	if err := Validate(cfg); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check file permissions on "+configPath)
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}
