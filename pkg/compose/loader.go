package compose

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spkg/bom"
	"golang.org/x/xerrors"
)

var (
	// ErrNoDocuments is returned when Load is called without any path.
	ErrNoDocuments = xerrors.New("no compose files given")
	// ErrNoServices is returned for a document without a non-empty services mapping.
	ErrNoServices = xerrors.New("no services defined")
)

// LoadError reports a compose document that could not be read, parsed, or
// that defines no services.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load compose definition: %v", e.Err)
	}
	return fmt.Sprintf("load compose file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load parses the documents in order and merges them into one stack. The
// first document provides the whole structure; every later document replaces
// same-named services wholesale and adds new ones. Top-level keys other than
// services are only taken from the first document.
func Load(paths []string) (*StackDefinition, error) {
	if len(paths) == 0 {
		return nil, &LoadError{Err: ErrNoDocuments}
	}

	docs := make([]*StackDefinition, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		doc, err := parseDocument(path, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return merge(docs), nil
}

func merge(docs []*StackDefinition) *StackDefinition {
	stack := docs[0]
	for _, doc := range docs[1:] {
		for _, name := range doc.order {
			stack.set(doc.services[name])
		}
	}
	return stack
}

func parseDocument(path string, data []byte) (*StackDefinition, error) {
	var root yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(bom.Clean(data), &root, yaml.UseOrderedMap()); err != nil {
		return nil, &LoadError{Path: path, Err: xerrors.Errorf("parse yaml: %w", err)}
	}

	doc := newStackDefinition()
	found := false
	for _, item := range root {
		if keyString(item.Key) != servicesKey {
			doc.Metadata = append(doc.Metadata, item)
			continue
		}
		found = true
		doc.servicesPos = len(doc.Metadata)

		services, ok := item.Value.(yaml.MapSlice)
		if !ok || len(services) == 0 {
			return nil, &LoadError{Path: path, Err: ErrNoServices}
		}
		for _, entry := range services {
			svc, err := parseService(entry)
			if err != nil {
				return nil, &LoadError{Path: path, Err: err}
			}
			doc.set(svc)
		}
	}
	if !found {
		return nil, &LoadError{Path: path, Err: ErrNoServices}
	}

	return doc, nil
}

func parseService(entry yaml.MapItem) (*ServiceDefinition, error) {
	name := keyString(entry.Key)
	if entry.Value == nil {
		return &ServiceDefinition{Name: name, Attributes: yaml.MapSlice{}}, nil
	}
	attrs, ok := entry.Value.(yaml.MapSlice)
	if !ok {
		return nil, xerrors.Errorf("service %q must be a mapping, got %T", name, entry.Value)
	}
	return &ServiceDefinition{Name: name, Attributes: attrs}, nil
}
