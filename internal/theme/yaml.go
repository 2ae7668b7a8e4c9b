package theme

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the decoded shape of a theme YAML file.
type yamlDocument struct {
	Name       string                       `yaml:"name"`
	Light      map[string]string            `yaml:"light"`
	Dark       map[string]string            `yaml:"dark"`
	Components map[string]map[string]string `yaml:"components,omitempty"`
}

// MarshalYAML encodes the theme with tokens in canonical order rather than
// the lexical order yaml.v3 uses for plain maps.
func (c *Config) MarshalYAML() (any, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content, scalar("name"), scalar(c.Name()))
	doc.Content = append(doc.Content, scalar("light"), tokensNode(c.Light()))
	doc.Content = append(doc.Content, scalar("dark"), tokensNode(c.Dark()))

	if components := c.Components(); components.Len() > 0 {
		comps := &yaml.Node{Kind: yaml.MappingNode}
		for _, name := range components.Names() {
			set, _ := components.Component(name)
			comps.Content = append(comps.Content, scalar(name), tokensNode(set))
		}
		doc.Content = append(doc.Content, scalar("components"), comps)
	}
	return doc, nil
}

// ToYAML encodes a theme as a YAML document.
func ToYAML(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// FromYAML decodes a theme from a YAML document into a new Config. Config
// has no decode method of its own, so decoding never rewrites a shared theme.
func FromYAML(data []byte) (*Config, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding theme: %w", err)
	}
	return New(doc.Name, doc.Light, doc.Dark, doc.Components), nil
}

func tokensNode(s TokenSet) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range s.Names() {
		n.Content = append(n.Content, scalar(name), scalar(s.Value(name)))
	}
	return n
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
