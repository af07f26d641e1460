package capabilities

import "gopkg.in/yaml.v3"

// Pricing is the per-million-token price of a model in USD
type Pricing struct {
	Input  float64 `yaml:"input" json:"input"`
	Output float64 `yaml:"output" json:"output"`
}

// ModelCapabilities describes one model in the vision catalog
type ModelCapabilities struct {
	// Model identifier (set during YAML unmarshaling)
	ID string `yaml:"-" json:"id"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// Classification needs both: the image goes in as an image_url part and
	// the answer must come back as a bare JSON object
	SupportsVision   bool `yaml:"supports_vision" json:"supports_vision"`
	SupportsJSONMode bool `yaml:"supports_json_mode" json:"supports_json_mode"`

	ContextWindow int     `yaml:"context_window" json:"context_window"`
	MaxOutput     int     `yaml:"max_output" json:"max_output"`
	Pricing       Pricing `yaml:"pricing" json:"pricing"`
}

// CanClassify reports whether the model can serve media classification
func (m *ModelCapabilities) CanClassify() bool {
	return m.SupportsVision && m.SupportsJSONMode
}

// ProviderCapabilities represents all models for a provider
type ProviderCapabilities struct {
	Provider string              `yaml:"provider" json:"provider"`
	Models   []ModelCapabilities `yaml:"-" json:"models"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML implements custom YAML unmarshaling to preserve model order from YAML file
func (p *ProviderCapabilities) UnmarshalYAML(node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "provider" {
			p.Provider = node.Content[i+1].Value
			break
		}
	}

	// Decode into a map for the data, then walk the node for the order
	var m struct {
		Models map[string]ModelCapabilities `yaml:"models"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "models" {
			continue
		}
		modelsNode := node.Content[i+1]
		for j := 0; j+1 < len(modelsNode.Content); j += 2 {
			modelID := modelsNode.Content[j].Value
			if model, ok := m.Models[modelID]; ok {
				model.ID = modelID
				p.Models = append(p.Models, model)
			}
		}
		break
	}

	return nil
}
