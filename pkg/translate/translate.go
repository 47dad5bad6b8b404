package translate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Translations is a persistent dictionary of headword translations. It backs
// the fallback lookup for proposals the model left without a translation, so
// a word is only sent to the translation api once.
type Translations map[string]string

func Load(path string) (Translations, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Translations{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open translations file: %w", err)
	}
	var t Translations
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("could not unmarshal translations file: %w", err)
	}
	if t == nil {
		t = Translations{}
	}
	return t, nil
}

func (t Translations) Lookup(s string) (string, bool) {
	translation, ok := t[s]
	return translation, ok
}

func (t Translations) Update(key, value string) {
	t[key] = value
}

func (t Translations) Write(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("could not marshal translations: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write translations file: %w", err)
	}
	return nil
}
