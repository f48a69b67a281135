package compose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	servicesKey  = "services"
	dependsOnKey = "depends_on"
	linksKey     = "links"
	nameKey      = "name"
)

// EnablementMap is the per-stack service selection. A service that is not in
// the map is disabled.
type EnablementMap map[string]bool

// Enabled reports whether the service is switched on.
func (m EnablementMap) Enabled(name string) bool {
	return m[name]
}

// Clone returns a copy of the map that is safe to mutate.
func (m EnablementMap) Clone() EnablementMap {
	out := make(EnablementMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ServiceDefinition is one service of a stack. Attributes holds the whole
// service body in document order, including depends_on and links, so that
// unknown keys survive a round trip untouched.
type ServiceDefinition struct {
	Name       string
	Attributes yaml.MapSlice
}

// DependsOn returns the raw depends_on references, for both the list and the
// mapping syntax.
func (s *ServiceDefinition) DependsOn() []string {
	value, _ := s.attribute(dependsOnKey)
	return referenceNames(value)
}

// Links returns the raw links references.
func (s *ServiceDefinition) Links() []string {
	value, _ := s.attribute(linksKey)
	return referenceNames(value)
}

func (s *ServiceDefinition) attribute(key string) (interface{}, bool) {
	for _, item := range s.Attributes {
		if keyString(item.Key) == key {
			return item.Value, true
		}
	}
	return nil, false
}

// filterReferences drops every reference under key whose target is rejected by keep.
func (s *ServiceDefinition) filterReferences(key string, keep func(string) bool) {
	for i, item := range s.Attributes {
		if keyString(item.Key) != key {
			continue
		}
		s.Attributes[i].Value = filterReferenceValue(item.Value, keep)
	}
}

func (s *ServiceDefinition) clone() *ServiceDefinition {
	attrs, _ := deepCopy(s.Attributes).(yaml.MapSlice)
	return &ServiceDefinition{Name: s.Name, Attributes: attrs}
}

// ReferenceTarget strips the alias suffix from a depends_on or links entry,
// e.g. "db:database" refers to the service "db".
func ReferenceTarget(ref string) string {
	return strings.SplitN(ref, ":", 2)[0]
}

// StackDefinition is the merged view of one or more compose documents.
type StackDefinition struct {
	// Metadata holds the top-level keys of the first document other than services.
	Metadata yaml.MapSlice

	services    map[string]*ServiceDefinition
	order       []string
	servicesPos int
}

func newStackDefinition() *StackDefinition {
	return &StackDefinition{services: map[string]*ServiceDefinition{}}
}

// Service returns the named service.
func (s *StackDefinition) Service(name string) (*ServiceDefinition, bool) {
	svc, ok := s.services[name]
	return svc, ok
}

// Has reports whether the stack defines the named service.
func (s *StackDefinition) Has(name string) bool {
	_, ok := s.services[name]
	return ok
}

// ServiceNames returns the service names sorted alphabetically.
func (s *StackDefinition) ServiceNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	sort.Strings(names)
	return names
}

// Len returns the number of services.
func (s *StackDefinition) Len() int {
	return len(s.services)
}

// Name returns the top-level name of the stack, if the first document sets one.
func (s *StackDefinition) Name() string {
	for _, item := range s.Metadata {
		if keyString(item.Key) == nameKey {
			if name, ok := item.Value.(string); ok {
				return name
			}
		}
	}
	return ""
}

// set inserts or replaces a service. A replaced service keeps its position.
func (s *StackDefinition) set(svc *ServiceDefinition) {
	if _, ok := s.services[svc.Name]; !ok {
		s.order = append(s.order, svc.Name)
	}
	s.services[svc.Name] = svc
}

func (s *StackDefinition) emptyCopy() *StackDefinition {
	metadata, _ := deepCopy(s.Metadata).(yaml.MapSlice)
	out := newStackDefinition()
	out.Metadata = metadata
	out.servicesPos = s.servicesPos
	return out
}

// Document rebuilds the full compose document with services back in their
// original top-level position.
func (s *StackDefinition) Document() yaml.MapSlice {
	services := make(yaml.MapSlice, 0, len(s.order))
	for _, name := range s.order {
		attrs := s.services[name].Attributes
		if attrs == nil {
			attrs = yaml.MapSlice{}
		}
		services = append(services, yaml.MapItem{Key: name, Value: attrs})
	}

	pos := s.servicesPos
	if pos > len(s.Metadata) {
		pos = len(s.Metadata)
	}
	doc := make(yaml.MapSlice, 0, len(s.Metadata)+1)
	doc = append(doc, s.Metadata[:pos]...)
	doc = append(doc, yaml.MapItem{Key: servicesKey, Value: services})
	doc = append(doc, s.Metadata[pos:]...)
	return doc
}

// Marshal encodes the stack as a compose document.
func (s *StackDefinition) Marshal() ([]byte, error) {
	return yaml.Marshal(s.Document())
}

func referenceNames(value interface{}) []string {
	var refs []string
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if ref, ok := item.(string); ok {
				refs = append(refs, ref)
			}
		}
	case yaml.MapSlice:
		for _, item := range v {
			refs = append(refs, keyString(item.Key))
		}
	}
	return refs
}

func filterReferenceValue(value interface{}, keep func(string) bool) interface{} {
	switch v := value.(type) {
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			if ref, ok := item.(string); ok && keep(ReferenceTarget(ref)) {
				out = append(out, ref)
			}
		}
		return out
	case yaml.MapSlice:
		out := make(yaml.MapSlice, 0, len(v))
		for _, item := range v {
			if keep(ReferenceTarget(keyString(item.Key))) {
				out = append(out, item)
			}
		}
		return out
	}
	return value
}

func deepCopy(value interface{}) interface{} {
	switch v := value.(type) {
	case yaml.MapSlice:
		if v == nil {
			return yaml.MapSlice(nil)
		}
		out := make(yaml.MapSlice, len(v))
		for i, item := range v {
			out[i] = yaml.MapItem{Key: item.Key, Value: deepCopy(item.Value)}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = deepCopy(item)
		}
		return out
	}
	return value
}

func keyString(key interface{}) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
