package toolutils

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ReadYaml decodes a YAML file into dest. Unknown fields are rejected.
func ReadYaml(dest any, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("unable to open configuration file: %w", err)
	}
	defer f.Close()

	if err = DecodeYaml(dest, f); err != nil {
		return fmt.Errorf("unable to parse configuration file %s: %w", file, err)
	}
	return nil
}

// DecodeYaml decodes YAML from r into dest in strict mode.
func DecodeYaml(dest any, r io.Reader) error {
	dec := yaml.NewDecoder(r, yaml.Strict())
	return dec.Decode(dest)
}

// WriteYaml encodes src as YAML onto w.
func WriteYaml(w io.Writer, src any) error {
	out, err := yaml.Marshal(src)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
