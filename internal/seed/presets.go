package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named seeding profile loaded from a YAML file, e.g.
//
//	users: 250
//	posts_per_user: 20
//	follow_ratio: 0.15
//	clean: true
type Preset struct {
	Users        int     `yaml:"users"`
	PostsPerUser int     `yaml:"posts_per_user"`
	FollowRatio  float64 `yaml:"follow_ratio"`
	Clean        bool    `yaml:"clean"`
}

// LoadPreset reads a preset file and merges it over the defaults. Zero
// values in the file keep the default for that field.
func LoadPreset(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading preset %q: %w", path, err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return opts, fmt.Errorf("parsing preset %q: %w", path, err)
	}

	if p.Users > 0 {
		opts.NumUsers = p.Users
	}
	if p.PostsPerUser > 0 {
		opts.PostsPerUser = p.PostsPerUser
	}
	if p.FollowRatio > 0 {
		opts.FollowRatio = p.FollowRatio
	}
	opts.ShouldClean = p.Clean

	return opts, nil
}
