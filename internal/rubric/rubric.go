package rubric

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"introscore/internal/domain"
)

// The rubric is a tabular sheet with the columns Criterion, Description,
// Keywords (comma-separated), Weight, Min_Words and Max_Words. It is loaded
// once at startup and treated as immutable afterwards. Any defect in the
// source is a ConfigurationError and prevents scoring entirely.

// Load reads a rubric from path, choosing the parser by file extension
// (.csv, .yaml or .yml).
func Load(path string) ([]domain.RubricCriterion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.ConfigurationError{Source: path, Err: err}
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(f, path)
	case ".yaml", ".yml":
		return LoadYAML(f, path)
	default:
		return nil, &domain.ConfigurationError{Source: path, Err: fmt.Errorf("unsupported rubric format %q", filepath.Ext(path))}
	}
}

// LoadCSV parses a rubric sheet export. The first row must be a header
// containing at least Criterion, Description, Keywords and Weight columns;
// Min_Words and Max_Words are optional and default to 0 and the unbounded
// sentinel. Source names the origin for error messages.
func LoadCSV(r io.Reader, source string) ([]domain.RubricCriterion, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &domain.ConfigurationError{Source: source, Err: fmt.Errorf("read header: %w", err)}
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"criterion", "description", "keywords", "weight"} {
		if _, ok := cols[required]; !ok {
			return nil, &domain.ConfigurationError{Source: source, Err: fmt.Errorf("missing column %q", required)}
		}
	}

	var criteria []domain.RubricCriterion
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &domain.ConfigurationError{Source: source, Err: fmt.Errorf("line %d: %w", line, err)}
		}
		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}
		weight, err := parseFloat(field("weight"))
		if err != nil {
			return nil, &domain.ConfigurationError{Source: source, Err: fmt.Errorf("line %d: weight: %w", line, err)}
		}
		minWords, err := parseInt(field("min_words"), 0)
		if err != nil {
			return nil, &domain.ConfigurationError{Source: source, Err: fmt.Errorf("line %d: min_words: %w", line, err)}
		}
		maxWords, err := parseInt(field("max_words"), domain.MaxWordsUnbounded)
		if err != nil {
			return nil, &domain.ConfigurationError{Source: source, Err: fmt.Errorf("line %d: max_words: %w", line, err)}
		}
		criteria = append(criteria, domain.RubricCriterion{
			Name:        field("criterion"),
			Description: field("description"),
			Keywords:    ParseKeywords(field("keywords")),
			Weight:      weight,
			MinWords:    minWords,
			MaxWords:    maxWords,
		})
	}
	if err := Validate(criteria); err != nil {
		return nil, &domain.ConfigurationError{Source: source, Err: err}
	}
	return criteria, nil
}

type yamlRubric struct {
	Criteria []yamlRow `yaml:"criteria"`
}

type yamlRow struct {
	Criterion   string  `yaml:"criterion"`
	Description string  `yaml:"description"`
	Keywords    string  `yaml:"keywords"`
	Weight      float64 `yaml:"weight"`
	MinWords    int     `yaml:"min_words"`
	MaxWords    *int    `yaml:"max_words"`
}

// LoadYAML parses the same tabular schema expressed as a YAML document with
// a top-level `criteria` list. Keywords stay a comma-separated string so the
// two formats share one schema.
func LoadYAML(r io.Reader, source string) ([]domain.RubricCriterion, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.ConfigurationError{Source: source, Err: err}
	}
	var doc yamlRubric
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ConfigurationError{Source: source, Err: err}
	}
	criteria := make([]domain.RubricCriterion, 0, len(doc.Criteria))
	for _, row := range doc.Criteria {
		maxWords := domain.MaxWordsUnbounded
		if row.MaxWords != nil {
			maxWords = *row.MaxWords
		}
		criteria = append(criteria, domain.RubricCriterion{
			Name:        strings.TrimSpace(row.Criterion),
			Description: strings.TrimSpace(row.Description),
			Keywords:    ParseKeywords(row.Keywords),
			Weight:      row.Weight,
			MinWords:    row.MinWords,
			MaxWords:    maxWords,
		})
	}
	if err := Validate(criteria); err != nil {
		return nil, &domain.ConfigurationError{Source: source, Err: err}
	}
	return criteria, nil
}

// ParseKeywords splits a comma-separated keyword string, trimming entries
// and dropping empties.
func ParseKeywords(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Validate checks structural invariants of a loaded rubric.
func Validate(criteria []domain.RubricCriterion) error {
	if len(criteria) == 0 {
		return errors.New("rubric has no criteria")
	}
	for i, c := range criteria {
		if c.Name == "" {
			return fmt.Errorf("criterion %d: empty name", i+1)
		}
		if c.Description == "" {
			return fmt.Errorf("criterion %q: empty description", c.Name)
		}
		if c.Weight <= 0 {
			return fmt.Errorf("criterion %q: weight must be positive, got %v", c.Name, c.Weight)
		}
		if c.MinWords < 0 {
			return fmt.Errorf("criterion %q: min_words must be non-negative, got %d", c.Name, c.MinWords)
		}
		if c.MaxWords < c.MinWords {
			return fmt.Errorf("criterion %q: max_words %d below min_words %d", c.Name, c.MaxWords, c.MinWords)
		}
	}
	return nil
}

// Descriptions returns the criterion descriptions in rubric order, used to
// prepare corpus-based embedders.
func Descriptions(criteria []domain.RubricCriterion) []string {
	out := make([]string, len(criteria))
	for i, c := range criteria {
		out[i] = c.Description
	}
	return out
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}
