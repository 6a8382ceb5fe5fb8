package types

import (
	"encoding/json"
	"errors"
	"fmt"
	jsonpatch "github.com/evanphx/json-patch"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"path"
	"strings"
)

const (
	EngineSuffix  = "suffix"
	EngineProcess = "process"

	DefaultSentenceColumn = "Cümle"
	DefaultLabelColumn    = "Sınıf"
)

var (
	ErrMissingLexiconPath = errors.New("configuration: lexicon path is missing")
	ErrUnknownEngine      = errors.New("configuration: unknown analyzer engine")
)

type LexiconConfig struct {
	Stopwords       string `yaml:"stopwords" json:"stopwords"`
	PositiveWords   string `yaml:"positive_words" json:"positive_words"`
	NegativeWords   string `yaml:"negative_words" json:"negative_words"`
	PositivePhrases string `yaml:"positive_phrases" json:"positive_phrases"`
	NegativePhrases string `yaml:"negative_phrases" json:"negative_phrases"`
}

// Paths returns lexicon paths keyed by their yaml names.
func (cfg LexiconConfig) Paths() map[string]string {
	return map[string]string{
		"stopwords":        cfg.Stopwords,
		"positive_words":   cfg.PositiveWords,
		"negative_words":   cfg.NegativeWords,
		"positive_phrases": cfg.PositivePhrases,
		"negative_phrases": cfg.NegativePhrases,
	}
}

type AnalyzerConfig struct {
	Engine string `yaml:"engine" json:"engine"`
	// suffix engine
	RootsFile    string `yaml:"roots_file" json:"roots_file"`
	SuffixesFile string `yaml:"suffixes_file" json:"suffixes_file"`
	// process engine
	Command string   `yaml:"command" json:"command"`
	Args    []string `yaml:"args" json:"args"`
	Env     []string `yaml:"env" json:"env"`
}

type DatasetConfig struct {
	Path           string `yaml:"path" json:"path"`
	Sheet          string `yaml:"sheet" json:"sheet"`
	SentenceColumn string `yaml:"sentence_column" json:"sentence_column"`
	LabelColumn    string `yaml:"label_column" json:"label_column"`
}

type ReportConfig struct {
	Path string `yaml:"path" json:"path"`
}

type Configuration struct {
	Name            string         `yaml:"name" json:"name"`
	FilePath        string         `yaml:"-" json:"file_path"`
	Lexicon         LexiconConfig  `yaml:"lexicon" json:"lexicon"`
	NegationMarkers []string       `yaml:"negation_markers" json:"negation_markers"`
	Analyzer        AnalyzerConfig `yaml:"analyzer" json:"analyzer"`
	Dataset         DatasetConfig  `yaml:"dataset" json:"dataset"`
	Report          ReportConfig   `yaml:"report" json:"report"`
}

// LoadConfiguration reads the yaml file at filePath and applies the optional JSON merge patch on top of it.
func LoadConfiguration(filePath string, patch string) (Configuration, error) {
	buf, err := ioutil.ReadFile(filePath)
	if err != nil {
		return Configuration{}, err
	}

	cfg, err := ParseConfiguration(buf, patch)
	if err != nil {
		return Configuration{}, fmt.Errorf("%s: %w", filePath, err)
	}
	cfg.FilePath = filePath
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	}
	return cfg, nil
}

func ParseConfiguration(buf []byte, patch string) (Configuration, error) {
	var cfg Configuration
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, err
	}

	if strings.TrimSpace(patch) != "" {
		original, err := json.Marshal(cfg)
		if err != nil {
			return cfg, err
		}
		patched, err := jsonpatch.MergePatch(original, []byte(patch))
		if err != nil {
			return cfg, fmt.Errorf("apply config patch: %w", err)
		}
		cfg = Configuration{}
		if err := json.Unmarshal(patched, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.setDefaults()
	return cfg, cfg.Validate()
}

func (cfg *Configuration) setDefaults() {
	if cfg.Analyzer.Engine == "" {
		cfg.Analyzer.Engine = EngineSuffix
	}
	if cfg.Dataset.SentenceColumn == "" {
		cfg.Dataset.SentenceColumn = DefaultSentenceColumn
	}
	if cfg.Dataset.LabelColumn == "" {
		cfg.Dataset.LabelColumn = DefaultLabelColumn
	}
}

func (cfg Configuration) Validate() error {
	for name, p := range cfg.Lexicon.Paths() {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: %s", ErrMissingLexiconPath, name)
		}
	}

	switch cfg.Analyzer.Engine {
	case EngineSuffix:
	case EngineProcess:
		if cfg.Analyzer.Command == "" {
			return fmt.Errorf("%w: process engine needs a command", ErrUnknownEngine)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Analyzer.Engine)
	}
	return nil
}
