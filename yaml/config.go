// Package yaml loads fetcher configuration files.
package yaml

import (
	"errors"
	"io"
	"os"

	"github.com/fwojciec/fetcher"
	"gopkg.in/yaml.v3"
)

// LoadConfig decodes the YAML file at path over cfg. Keys absent from the
// file keep their current values. A missing file leaves cfg untouched.
// Unknown keys and malformed values are EINVALID.
func LoadConfig(path string, cfg *fetcher.Config) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fetcher.Errorf(fetcher.EINVALID, "failed to open config file: %v", err)
	}
	defer f.Close()

	return DecodeConfig(f, cfg)
}

// DecodeConfig decodes YAML from r over cfg. An empty document is not an
// error.
func DecodeConfig(r io.Reader, cfg *fetcher.Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fetcher.Errorf(fetcher.EINVALID, "failed to parse config: %v", err)
	}
	return nil
}
