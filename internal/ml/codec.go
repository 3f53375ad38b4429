package ml

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the artifact's index file. It names every payload
// file, so a partially downloaded artifact is detectable.
const ManifestName = "manifest.yaml"

const codecVersion = 1

type manifest struct {
	Version  int               `yaml:"version"`
	Family   string            `yaml:"family"`
	Label    string            `yaml:"label"`
	Features []string          `yaml:"features"`
	Files    map[string]string `yaml:"files"`
}

// SaveFitted serializes a fitted pipeline into dir: a yaml manifest
// plus one gob payload per fitted stage.
func SaveFitted(dir string, fp *FittedPipeline) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	files := map[string]string{
		"scaler":     "scaler.gob",
		"classifier": "classifier.gob",
	}

	if err := writeGob(filepath.Join(dir, files["scaler"]), fp.Scaler); err != nil {
		return fmt.Errorf("writing scaler: %w", err)
	}
	if err := writeGob(filepath.Join(dir, files["classifier"]), fp.Classifier); err != nil {
		return fmt.Errorf("writing classifier: %w", err)
	}

	m := manifest{
		Version:  codecVersion,
		Family:   fp.Classifier.Family(),
		Label:    fp.Label,
		Features: fp.Assembler.InputCols,
		Files:    files,
	}
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644)
}

// LoadFitted reads a serialized pipeline back from dir. A missing
// manifest or any missing payload file fails the load: a partial
// artifact is treated as corrupt, never deserialized.
func LoadFitted(dir string) (*FittedPipeline, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("model artifact has no manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Version != codecVersion {
		return nil, fmt.Errorf("unsupported artifact version %d", m.Version)
	}

	for stage, name := range m.Files {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("artifact incomplete: %s payload %q missing: %w", stage, name, err)
		}
	}

	scaler := NewStandardScaler()
	if err := readGob(filepath.Join(dir, m.Files["scaler"]), scaler); err != nil {
		return nil, fmt.Errorf("reading scaler: %w", err)
	}

	var clf Classifier
	switch m.Family {
	case FamilyLogistic:
		clf = &LogisticRegression{}
	case FamilyTree:
		clf = &DecisionTree{}
	default:
		return nil, fmt.Errorf("unknown classifier family %q", m.Family)
	}
	if err := readGob(filepath.Join(dir, m.Files["classifier"]), clf); err != nil {
		return nil, fmt.Errorf("reading classifier: %w", err)
	}

	return &FittedPipeline{
		Assembler:  VectorAssembler{InputCols: m.Features},
		Label:      m.Label,
		Scaler:     scaler,
		Classifier: clf,
	}, nil
}

func writeGob(path string, value any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gob.NewEncoder(file).Encode(value)
}

func readGob(path string, into any) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gob.NewDecoder(file).Decode(into)
}
