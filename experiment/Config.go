package experiment

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/agent/tabular/actorcritic"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"gopkg.in/yaml.v3"
)

// Config represents a configuration of a training run: the board to
// train on, the Actor and Critic hyperparameters, the number of
// episodes, and the seed of the run's random source.
//
// Configs can be read from YAML or JSON files.
type Config struct {
	NumEpisodes    int                      `json:"num_episodes" yaml:"num_episodes"`
	Seed           uint64                   `json:"seed" yaml:"seed"`
	GameSettings   pegsolitaire.Config      `json:"game_settings" yaml:"game_settings"`
	CriticSettings actorcritic.CriticConfig `json:"critic_settings" yaml:"critic_settings"`
	ActorSettings  actorcritic.ActorConfig  `json:"actor_settings" yaml:"actor_settings"`
}

// DefaultConfig returns the default configuration: 2000 episodes on a
// 6-row triangular board with the top hole empty
func DefaultConfig() Config {
	return Config{
		NumEpisodes:    2000,
		Seed:           1,
		GameSettings:   pegsolitaire.DefaultConfig(),
		CriticSettings: actorcritic.DefaultCriticConfig(),
		ActorSettings:  actorcritic.DefaultActorConfig(),
	}
}

// Validate returns an error describing every problem with the
// configuration
func (c Config) Validate() error {
	var errs error
	if c.NumEpisodes < 1 {
		errs = multierror.Append(errs, fmt.Errorf("number of episodes must "+
			"be positive, have %d", c.NumEpisodes))
	}

	configs := map[string]agent.Config{
		"game settings":   c.GameSettings,
		"critic settings": c.CriticSettings,
		"actor settings":  c.ActorSettings,
	}
	for _, name := range []string{"game settings", "critic settings",
		"actor settings"} {
		if err := configs[name].Validate(); err != nil {
			errs = multierror.Append(errs, errors.Wrap(err, name))
		}
	}

	return errs
}

// LoadConfig reads a configuration from a YAML or JSON file. Settings
// missing from the file keep their default values.
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, errors.Wrap(err, "loadConfig")
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrapf(err, "loadConfig: could not parse %v",
			filename)
	}

	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "loadConfig: invalid config %v",
			filename)
	}
	return c, nil
}
