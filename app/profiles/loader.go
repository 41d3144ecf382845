package profiles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultProfileName = "didbaniran"

var defaultProfiles = map[string]Profile{
	defaultProfileName: {
		Prefix:   `<p>به گزارش <a href="https://www.didbaniran.ir/"><strong>سایت دیده‌بان ایران</strong></a>،</p>`,
		Category: "سیاسی",
	},
}

// Load reads the feeds/profiles YAML file. A missing file is not an
// error: the built-in default profile is returned so the bot can run
// before the operator has written any configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{Profiles: clone(defaultProfiles)}, nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse profiles YAML: %w", err)
	}

	if config.Profiles == nil {
		config.Profiles = map[string]Profile{}
	}
	for name, profile := range defaultProfiles {
		if _, ok := config.Profiles[name]; !ok {
			config.Profiles[name] = profile
		}
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid profiles config: %w", err)
	}

	return &config, nil
}

func validate(config *Config) error {
	for i, feed := range config.Feeds {
		if feed == "" {
			return fmt.Errorf("feed URL at index %d is empty", i)
		}
	}
	for name, profile := range config.Profiles {
		if profile.Category == "" {
			return fmt.Errorf("profile %q has no category", name)
		}
	}
	return nil
}

// Get returns the named profile, falling back to the default profile
// when the name is unknown.
func (c *Config) Get(name string) Profile {
	if profile, ok := c.Profiles[name]; ok {
		return profile
	}
	if profile, ok := c.Profiles[defaultProfileName]; ok {
		return profile
	}
	return defaultProfiles[defaultProfileName]
}

// Names lists the available profile names.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	return names
}

func clone(src map[string]Profile) map[string]Profile {
	dst := make(map[string]Profile, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
