package config

import "strings"

// Preset is a named cipher with stored parameters, declared under
// cipher.presets in the config file:
//
//	"presets": {
//	  "field-hill": {"cipher": "hill", "describe": "...", "params": {"key": "gybnqkurp", "filler": "Z"}}
//	}
type Preset struct {
	Name     string                 `json:"name"`
	Cipher   string                 `json:"cipher"`
	Describe string                 `json:"describe,omitempty"`
	Params   map[string]interface{} `json:"params,omitempty"`
}

// ParsePresets parses the raw preset table into Presets keyed by lower-cased
// name. Entries that are not objects or lack a cipher are skipped.
func ParsePresets(raw interface{}) map[string]Preset {
	result := make(map[string]Preset)

	presetsRaw, ok := raw.(map[string]interface{})
	if !ok {
		return result
	}

	for name, item := range presetsRaw {
		presetMap, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		preset := Preset{
			Name:     name,
			Cipher:   getStringField(presetMap, "cipher"),
			Describe: getStringField(presetMap, "describe"),
			Params:   getMapField(presetMap, "params"),
		}
		if preset.Cipher == "" {
			continue
		}
		result[strings.ToLower(name)] = preset
	}

	return result
}

// Helper functions for parsing raw JSON maps

func getStringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getMapField(m map[string]interface{}, key string) map[string]interface{} {
	switch v := m[key].(type) {
	case map[string]interface{}:
		return v
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			if s, ok := k.(string); ok {
				out[s] = val
			}
		}
		return out
	}
	return nil
}
