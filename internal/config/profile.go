package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/godilite/survey-stats/internal/survey"
	"gopkg.in/yaml.v3"
)

// ProfileFile is the YAML form of a survey.Profile. Each level names its
// rollup bucket, so a file cannot leave a code unbucketed.
//
//	name: custom
//	levels:
//	  - {code: SS, score: 5, bucket: positive}
//	  - {code: N, score: 3, bucket: neutral}
//	  - {code: STS, score: 1, bucket: negative}
type ProfileFile struct {
	Name   string       `yaml:"name" validate:"required"`
	Levels []LevelEntry `yaml:"levels" validate:"required,min=1,dive"`
}

type LevelEntry struct {
	Code   string  `yaml:"code" validate:"required"`
	Score  float64 `yaml:"score" validate:"gte=0"`
	Bucket string  `yaml:"bucket" validate:"required,oneof=positive neutral negative"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseProfile decodes a single YAML document strictly and checks it.
func ParseProfile(data []byte) (survey.Profile, error) {
	var pf ProfileFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		if errors.Is(err, io.EOF) {
			return survey.Profile{}, fmt.Errorf("parse profile: empty document")
		}
		return survey.Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return survey.Profile{}, fmt.Errorf("parse profile: multiple YAML documents are not supported")
		}
		return survey.Profile{}, fmt.Errorf("parse profile: %w", err)
	}

	if err := validate.Struct(pf); err != nil {
		return survey.Profile{}, fmt.Errorf("%w: %w", survey.ErrInvalidProfile, err)
	}

	p := survey.Profile{
		Name:   pf.Name,
		Levels: make([]survey.Level, len(pf.Levels)),
		Rollup: make(map[survey.Code]survey.Bucket, len(pf.Levels)),
	}
	for i, l := range pf.Levels {
		code := survey.NormalizeCode(l.Code)
		p.Levels[i] = survey.Level{Code: code, Score: l.Score}
		p.Rollup[code] = survey.Bucket(l.Bucket)
	}
	if err := p.Validate(); err != nil {
		return survey.Profile{}, err
	}
	return p, nil
}

// LoadProfile reads a profile file from disk.
func LoadProfile(path string) (survey.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return survey.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ResolveProfile picks the profile file when set, otherwise a built-in by name.
func ResolveProfile(name, file string) (survey.Profile, error) {
	if file != "" {
		return LoadProfile(file)
	}
	return survey.LookupProfile(name)
}
