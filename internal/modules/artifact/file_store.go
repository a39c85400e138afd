// README: Filesystem model store; three sibling files under one directory.
package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"deliveryeta/internal/modules/category"
	"deliveryeta/internal/modules/regression"
)

const (
	ModelFile    = "delivery_time_model.gob"
	EncodingFile = "label_encoders.json"
	MetadataFile = "model_metadata.json"
)

type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Save writes each file to a temp name and renames it into place, metadata last.
func (s *FileStore) Save(_ context.Context, a *Artifact) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	var model bytes.Buffer
	if err := regression.Encode(&model, a.Model); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	enc, err := json.MarshalIndent(a.Encoding, "", "  ")
	if err != nil {
		return fmt.Errorf("save artifact: encode encoders: %w", err)
	}
	meta, err := json.MarshalIndent(a.Metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("save artifact: encode metadata: %w", err)
	}

	for _, f := range []struct {
		name string
		data []byte
	}{
		{ModelFile, model.Bytes()},
		{EncodingFile, enc},
		{MetadataFile, meta},
	} {
		if err := writeFile(filepath.Join(s.Dir, f.name), f.data); err != nil {
			return fmt.Errorf("save artifact: %w", err)
		}
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (*Artifact, error) {
	model, err := s.read(ModelFile)
	if err != nil {
		return nil, err
	}
	encData, err := s.read(EncodingFile)
	if err != nil {
		return nil, err
	}
	metaData, err := s.read(MetadataFile)
	if err != nil {
		return nil, err
	}

	m, err := regression.Decode(bytes.NewReader(model))
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	var enc category.Encoding
	if err := json.Unmarshal(encData, &enc); err != nil {
		return nil, fmt.Errorf("load artifact: %s: %w", EncodingFile, err)
	}
	var meta Metadata
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, fmt.Errorf("load artifact: %s: %w", MetadataFile, err)
	}

	a := &Artifact{Model: m, Encoding: enc, Metadata: meta}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *FileStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s missing in %s", ErrNotFound, name, s.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
