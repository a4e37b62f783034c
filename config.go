package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"
)

const moduleFile = "bx.yaml"

type bxModule struct {
	Package string   `yaml:"package"`
	Sources []string `yaml:"sources,omitempty"`
	Color   string   `yaml:"color,omitempty"`
}

func writeModule(path string, mod bxModule) error {
	fi, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer fi.Close()

	out, err := yaml.Marshal(mod)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	_, err = fi.Write(out)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	return nil
}

// readModule reads the module information at path. A missing file is not an
// error: the zero module is returned instead.
func readModule(path string) (bxModule, error) {
	var doc bxModule

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return doc, nil
	} else if err != nil {
		return doc, fmt.Errorf("error reading %s: %w", path, err)
	}

	err = yaml.UnmarshalStrict(data, &doc)
	if err != nil {
		return doc, fmt.Errorf("error reading %s: %w", path, err)
	}
	return doc, nil
}

// colorize decides whether diagnostics are colored, given whether the output
// is a terminal.
func (m bxModule) colorize(terminal bool) (bool, error) {
	switch m.Color {
	case "", "auto":
		return terminal, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid color setting %q, expected one of auto, always, never", m.Color)
}

// sources picks the documents to check: the command line wins over the
// module information.
func (m bxModule) sources(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(m.Sources) > 0 {
		return m.Sources, nil
	}
	return nil, fmt.Errorf("no source documents given and none listed in %s", moduleFile)
}
