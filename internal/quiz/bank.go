package quiz

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed bank.schema.json
var bankSchemaJSON []byte

const bankSchemaURL = "schema://edumentor/quiz-bank.json"

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

// bankDocument is the on-disk layout of a quiz bank file.
type bankDocument struct {
	Quizzes []Quiz `json:"quizzes" yaml:"quizzes"`
}

// compiledBankSchema compiles the embedded schema once.
func compiledBankSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			bankSchemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			bankSchemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		bankSchema, bankSchemaErr = c.Compile(bankSchemaURL)
	})
	return bankSchema, bankSchemaErr
}

// ParseBank decodes and validates a bank document. format is "json" or
// "yaml".
func ParseBank(data []byte, format string) ([]Quiz, error) {
	var (
		generic any
		doc     bankDocument
	)

	switch format {
	case "json":
		v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		generic = v
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported bank format %q", format)
	}

	sch, err := compiledBankSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuiz, err)
	}

	for i := range doc.Quizzes {
		if err := doc.Quizzes[i].Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Quizzes, nil
}

// LoadBank reads one .json, .yaml or .yml bank file.
func LoadBank(path string) ([]Quiz, error) {
	format, ok := bankFormat(path)
	if !ok {
		return nil, fmt.Errorf("%s: unsupported bank extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	quizzes, err := ParseBank(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return quizzes, nil
}

// LoadBankDir loads every bank file directly inside dir, in file name
// order. Other files are skipped.
func LoadBankDir(dir string) ([]Quiz, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read bank dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := bankFormat(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var all []Quiz
	for _, name := range names {
		quizzes, err := LoadBank(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, quizzes...)
	}
	return all, nil
}

func bankFormat(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", true
	case ".yaml", ".yml":
		return "yaml", true
	}
	return "", false
}
