package ignore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Ignored holds headwords the user declined permanently; proposals for them
// are skipped without asking again.
type Ignored map[string]struct{}

func (i Ignored) Update(s string) {
	i[s] = struct{}{}
}

func (i Ignored) Contains(s string) bool {
	_, ok := i[s]
	return ok
}

func Load(path string) (Ignored, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Ignored{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ignore file: %w", err)
	}
	var i Ignored
	if err := yaml.Unmarshal(b, &i); err != nil {
		return nil, fmt.Errorf("could not unmarshal ignore file: %w", err)
	}
	if i == nil {
		i = Ignored{}
	}
	return i, nil
}

func (i Ignored) Write(path string) error {
	data, err := yaml.Marshal(i)
	if err != nil {
		return fmt.Errorf("could not marshal ignore file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write ignore file: %w", err)
	}
	return nil
}
