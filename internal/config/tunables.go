package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Tunables are the balancer options taken from a group's free-form config.
// Keys other than the recognized ones are kept in Extra and passed through.
type Tunables struct {
	NumInitChildren int            `mapstructure:"num_init_children"`
	MaxPool         int            `mapstructure:"max_pool"`
	Extra           map[string]any `mapstructure:",remain"`
}

// DecodeTunables decodes a group's config map. Numeric strings are accepted
// for the recognized keys.
func DecodeTunables(raw map[string]any) (Tunables, error) {
	t := Tunables{
		NumInitChildren: DefaultNumInitChildren,
		MaxPool:         DefaultMaxPool,
	}
	if len(raw) == 0 {
		return t, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &t,
	})
	if err != nil {
		return t, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return t, fmt.Errorf("failed to decode tunables: %w", err)
	}
	if t.NumInitChildren <= 0 {
		return t, fmt.Errorf("num_init_children must be positive, got %d", t.NumInitChildren)
	}
	if t.MaxPool <= 0 {
		return t, fmt.Errorf("max_pool must be positive, got %d", t.MaxPool)
	}
	return t, nil
}

// Env renders the tunables as KEY=value pairs for the balancer instance.
// Extra keys are upper-cased and emitted in sorted order after the
// recognized ones.
func (t Tunables) Env() []string {
	env := []string{
		fmt.Sprintf("NUM_INIT_CHILDREN=%d", t.NumInitChildren),
		fmt.Sprintf("MAX_POOL=%d", t.MaxPool),
	}

	keys := make([]string, 0, len(t.Extra))
	for k := range t.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = append(env, strings.ToUpper(k)+"="+envValue(t.Extra[k]))
	}
	return env
}

// envValue renders a decoded config value. JSON numbers decode as float64,
// which %v would print in exponent form from 1e+06 on.
func envValue(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
