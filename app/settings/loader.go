package settings

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
)

const EnvPrefix = "DROIDGUARD_"

// Load layers, from lowest to highest precedence, the defaults, the YAML file at path (if
// path is not empty) and DROIDGUARD_ environment variables. Nested keys are separated by a
// double underscore: DROIDGUARD_THRESHOLDS__MIN_OCCURRENCE.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadSettings, path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})

	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadSettings, err)
	}

	s := Default()
	if err := k.UnmarshalWithConf("", s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadSettings, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidSettings, s.Workers)
	}

	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	t := s.Thresholds

	if t.LegitimateFingers < 1 {
		return fmt.Errorf("%w: legitimate_fingers must be at least 1", ErrInvalidSettings)
	}

	if t.ThreeFingerRatio < 0 || t.AccidentalTapRatio < 0 || t.AccidentalTapRatio > 1 {
		return fmt.Errorf("%w: ratios must lie in [0, 1]", ErrInvalidSettings)
	}

	if t.DragMaxVelocity <= 0 || t.TwoHandMaxDistance <= 0 || t.CheeseRadiusMultiplier <= 0 {
		return fmt.Errorf("%w: distances and velocities must be positive", ErrInvalidSettings)
	}

	return nil
}
