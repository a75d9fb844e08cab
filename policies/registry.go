package policies

import (
	"errors"
	"fmt"

	"github.com/zeu5/gridworld-rl/core"
)

var ErrUnknownPolicy = errors.New("unknown policy")

const (
	RandomName     = "random"
	MonotonousName = "monotonous"
	WildcardName   = "wildcard"
)

var constructors = map[string]core.PolicyConstructor{
	RandomName:     &RandomPolicyConstructor{},
	MonotonousName: &MonotonousPolicyConstructor{},
	WildcardName:   &WildcardPolicyConstructor{},
}

// Names lists the scripted policies in reporting order
func Names() []string {
	return []string{RandomName, MonotonousName, WildcardName}
}

func Constructor(name string) (core.PolicyConstructor, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return c, nil
}

func New(name string) (core.Policy, error) {
	c, err := Constructor(name)
	if err != nil {
		return nil, err
	}
	return c.NewPolicy(), nil
}
