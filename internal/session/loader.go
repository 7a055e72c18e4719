package session

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/angristan/hue-scenes/internal/sequence"
)

// DefaultSection holds keys inherited by every scene
const DefaultSection = "DEFAULT"

// Recognised scene keys
const (
	keyHue       = "hue"
	keyBri       = "bri"
	keyAudio     = "audio"
	keyAudioLoop = "audio_loop"
	keyDuration  = "duration"
)

// section is one named block of key/value pairs, in file order
type section struct {
	name   string
	values map[string]string
}

// LoadScenes reads a scene file. Files ending in .yaml or .yml are read as
// YAML, anything else as INI.
func LoadScenes(path string) ([]*sequence.Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrConfigNotFound, path)
	}

	var sections []section
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sections, err = readYAML(path)
	default:
		sections, err = readINI(path)
	}
	if err != nil {
		return nil, err
	}

	defaults := lo.Assign(lo.FilterMap(sections, func(s section, _ int) (map[string]string, bool) {
		return s.values, s.name == DefaultSection
	})...)

	baseDir := filepath.Dir(path)
	scenes := make([]*sequence.Scene, 0, len(sections))
	for _, sec := range sections {
		if sec.name == DefaultSection {
			continue
		}
		params, err := parseParams(lo.Assign(defaults, sec.values), baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: scene %q: %w", ErrConfigMalformed, sec.name, err)
		}
		scenes = append(scenes, sequence.NewScene(sec.name, params))
	}
	return scenes, nil
}

func readINI(path string) ([]section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if line, ok := keyBeforeHeader(data); ok {
		return nil, fmt.Errorf("%w: line %d is outside any section", ErrConfigMalformed, line)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:        true,
		AllowNonUniqueSections: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigMalformed, err)
	}

	seen := map[string]bool{}
	sections := make([]section, 0, len(cfg.Sections()))
	for _, sec := range cfg.Sections() {
		name := sec.Name()
		if name != DefaultSection {
			if seen[name] {
				return nil, fmt.Errorf("%w: scene %q is defined twice", ErrConfigMalformed, name)
			}
			seen[name] = true
		}
		sections = append(sections, section{name: name, values: sec.KeysHash()})
	}
	return sections, nil
}

// keyBeforeHeader returns the line number of the first setting that
// precedes every section header
func keyBeforeHeader(data []byte) (int, bool) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "["):
			return 0, false
		default:
			return i + 1, true
		}
	}
	return 0, false
}

func readYAML(path string) ([]section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigMalformed, err)
	}
	// Empty document
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map scene names to settings", ErrConfigMalformed)
	}

	seen := map[string]bool{}
	sections := make([]section, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, body := root.Content[i], root.Content[i+1]
		if seen[name.Value] {
			return nil, fmt.Errorf("%w: scene %q at line %d is defined twice", ErrConfigMalformed, name.Value, name.Line)
		}
		seen[name.Value] = true
		values, err := yamlValues(body)
		if err != nil {
			return nil, fmt.Errorf("%w: scene %q at line %d: %w", ErrConfigMalformed, name.Value, name.Line, err)
		}
		sections = append(sections, section{name: name.Value, values: values})
	}
	return sections, nil
}

func yamlValues(body *yaml.Node) (map[string]string, error) {
	values := map[string]string{}
	if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
		return values, nil
	}
	if body.Kind != yaml.MappingNode {
		return nil, errors.New("settings must be a mapping")
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i], body.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("value of %s must be a scalar", key.Value)
		}
		values[strings.ToLower(key.Value)] = value.Value
	}
	return values, nil
}

// parseParams converts raw values, applying defaults for missing keys.
// Unknown keys are ignored.
func parseParams(values map[string]string, baseDir string) (sequence.Params, error) {
	p := sequence.DefaultParams()

	if v, ok := values[keyHue]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return p, fmt.Errorf("%s: %w", keyHue, err)
		}
		p.Hue = n
	}
	if v, ok := values[keyBri]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return p, fmt.Errorf("%s: %w", keyBri, err)
		}
		p.Brightness = n
	}
	if v, ok := values[keyAudio]; ok {
		p.Audio = resolveAudio(strings.TrimSpace(v), baseDir)
	}
	if v, ok := values[keyAudioLoop]; ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return p, fmt.Errorf("%s: %w", keyAudioLoop, err)
		}
		p.AudioLoop = b
	}
	if v, ok := values[keyDuration]; ok {
		d, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return p, fmt.Errorf("%s: %w", keyDuration, err)
		}
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return p, fmt.Errorf("%s: must be a non-negative number of seconds, got %s", keyDuration, v)
		}
		p.Duration = d
	}
	return p, nil
}

func resolveAudio(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
