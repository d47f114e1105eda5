package actorcritic

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ActorConfig represents a configuration for the tabular Actor
type ActorConfig struct {
	LearningRate   float64 `json:"learning_rate" yaml:"learning_rate"`
	EGreedy        float64 `json:"e_greedy" yaml:"e_greedy"` // initial epsilon
	TraceDecay     float64 `json:"trace_decay" yaml:"trace_decay"`
	DiscountFactor float64 `json:"discount_factor" yaml:"discount_factor"`
}

// DefaultActorConfig returns the default configuration of an Actor
func DefaultActorConfig() ActorConfig {
	return ActorConfig{
		LearningRate:   0.03,
		EGreedy:        0.5,
		TraceDecay:     0.8,
		DiscountFactor: 0.95,
	}
}

// Validate ensures that the ActorConfig is valid
func (c ActorConfig) Validate() error {
	var errs error
	if c.LearningRate <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("actor learning rate "+
			"must be positive, have %v", c.LearningRate))
	}
	errs = checkUnit(errs, "actor epsilon", c.EGreedy)
	errs = checkUnit(errs, "actor trace decay", c.TraceDecay)
	errs = checkUnit(errs, "actor discount factor", c.DiscountFactor)
	return errs
}

// CriticConfig represents a configuration for the tabular Critic
type CriticConfig struct {
	LearningRate   float64 `json:"learning_rate" yaml:"learning_rate"`
	DiscountFactor float64 `json:"discount_factor" yaml:"discount_factor"`
	TraceDecay     float64 `json:"trace_decay" yaml:"trace_decay"`
}

// DefaultCriticConfig returns the default configuration of a Critic
func DefaultCriticConfig() CriticConfig {
	return CriticConfig{
		LearningRate:   0.03,
		DiscountFactor: 0.95,
		TraceDecay:     0.8,
	}
}

// Validate ensures that the CriticConfig is valid
func (c CriticConfig) Validate() error {
	var errs error
	if c.LearningRate <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("critic learning rate "+
			"must be positive, have %v", c.LearningRate))
	}
	errs = checkUnit(errs, "critic trace decay", c.TraceDecay)
	errs = checkUnit(errs, "critic discount factor", c.DiscountFactor)
	return errs
}

// checkUnit appends an error to errs if value is not in [0, 1]
func checkUnit(errs error, name string, value float64) error {
	if value < 0 || value > 1 {
		return multierror.Append(errs, fmt.Errorf("%v must be in [0, 1], "+
			"have %v", name, value))
	}
	return errs
}
