package bt

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes a behaviour tree in JSON or YAML. Nodes are named
// and reference each other by name; leaf predicates and actions are
// resolved through a Registry of host-supplied factories.
type Config struct {
	Root  string                `json:"root" yaml:"root"`
	Nodes map[string]NodeConfig `json:"nodes" yaml:"nodes"`
}

type NodeConfig struct {
	Type      string         `json:"type" yaml:"type"`
	Priority  int            `json:"priority,omitempty" yaml:"priority,omitempty"`
	Children  []string       `json:"children,omitempty" yaml:"children,omitempty"`
	Child     string         `json:"child,omitempty" yaml:"child,omitempty"`
	Condition string         `json:"condition,omitempty" yaml:"condition,omitempty"`
	Action    string         `json:"action,omitempty" yaml:"action,omitempty"`
	Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// LoadJSON reads a tree config from a JSON stream.
func LoadJSON(r io.Reader) (*Config, error) {
	var c Config
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML reads a tree config from a YAML stream.
func LoadYAML(r io.Reader) (*Config, error) {
	var c Config
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// intParam reads an int parameter, tolerating the float64 that JSON
// decoding produces for numbers.
func intParam(params map[string]any, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// durationParam reads a duration parameter, either as a Go duration
// string or as a number of nanoseconds.
func durationParam(params map[string]any, key string) (time.Duration, bool) {
	switch v := params[key].(type) {
	case string:
		d, err := time.ParseDuration(v)
		return d, err == nil
	case int:
		return time.Duration(v), true
	case float64:
		return time.Duration(v), true
	default:
		return 0, false
	}
}

// Build constructs the tree from the config. Each named node may be
// attached to at most one parent: ownership is exclusive and the
// result is tree-shaped, so reusing a name or referencing a node from
// inside its own subtree is a build error.
func (c *Config) Build(reg *Registry) (*Tree, error) {
	if c.Root == "" {
		return nil, fmt.Errorf("config has no root node")
	}
	attached := make(map[string]bool)

	var buildNode func(name string) (Node, error)
	buildNode = func(name string) (Node, error) {
		if attached[name] {
			return nil, fmt.Errorf("node %q attached to two parents", name)
		}
		attached[name] = true
		nc, ok := c.Nodes[name]
		if !ok {
			return nil, fmt.Errorf("unknown node in config: %s", name)
		}

		buildChildren := func(parent Node) error {
			for _, childName := range nc.Children {
				child, err := buildNode(childName)
				if err != nil {
					return err
				}
				if err = parent.AddChild(child); err != nil {
					return err
				}
			}
			return nil
		}
		buildChild := func(parent Node) error {
			if nc.Child == "" {
				return fmt.Errorf("node %q requires a child", name)
			}
			child, err := buildNode(nc.Child)
			if err != nil {
				return err
			}
			return parent.AddChild(child)
		}
		condition := func() (func() bool, error) {
			if nc.Condition == "" {
				return nil, fmt.Errorf("node %q requires a condition", name)
			}
			return reg.newCondition(nc.Condition, nc.Params)
		}

		switch nc.Type {
		case "sequence":
			n := NewSequence(name, nc.Priority)
			return n, buildChildren(n)
		case "selector":
			n := NewSelector(name, nc.Priority)
			return n, buildChildren(n)
		case "priority":
			n := NewPrioritySelector(name, nc.Priority)
			return n, buildChildren(n)
		case "random":
			n := NewRandomSelector(name, nc.Priority)
			return n, buildChildren(n)
		case "inverter":
			n := NewInverter(name, nc.Priority)
			return n, buildChild(n)
		case "untilfail":
			n := NewUntilFail(name, nc.Priority)
			return n, buildChild(n)
		case "untilsuccess":
			n := NewUntilSuccess(name, nc.Priority)
			return n, buildChild(n)
		case "repeat":
			times, ok := intParam(nc.Params, "times")
			if !ok {
				return nil, fmt.Errorf("repeat %q requires a times param", name)
			}
			n := NewRepeat(name, times, nc.Priority)
			return n, buildChild(n)
		case "repeatuntil":
			cond, err := condition()
			if err != nil {
				return nil, err
			}
			n := NewRepeatUntil(name, cond, nc.Priority)
			return n, buildChild(n)
		case "failif":
			cond, err := condition()
			if err != nil {
				return nil, err
			}
			n := NewFailIf(name, cond, nc.Priority)
			return n, buildChild(n)
		case "succeedif":
			cond, err := condition()
			if err != nil {
				return nil, err
			}
			n := NewSucceedIf(name, cond, nc.Priority)
			return n, buildChild(n)
		case "orfail":
			n := NewOrFail(name, nc.Priority)
			return n, buildChild(n)
		case "ifor":
			cond, err := condition()
			if err != nil {
				return nil, err
			}
			n := NewIfOr(name, cond, nc.Priority)
			return n, buildChildren(n)
		case "wait":
			d, ok := durationParam(nc.Params, "duration")
			if !ok {
				return nil, fmt.Errorf("wait %q requires a duration param", name)
			}
			return NewWait(name, d, nc.Priority), nil
		case "waitfor":
			cond, err := condition()
			if err != nil {
				return nil, err
			}
			return NewWaitFor(name, cond, nc.Priority), nil
		case "condition":
			cond, err := condition()
			if err != nil {
				return nil, err
			}
			return NewCondition(name, cond, nc.Priority), nil
		case "action":
			if nc.Action == "" {
				return nil, fmt.Errorf("node %q requires an action", name)
			}
			act, err := reg.newAction(nc.Action, nc.Params)
			if err != nil {
				return nil, err
			}
			return NewAction(name, act, nc.Priority), nil
		default:
			return nil, fmt.Errorf("unsupported node type: %s", nc.Type)
		}
	}

	root, err := buildNode(c.Root)
	if err != nil {
		return nil, err
	}
	tree := NewTree(c.Root)
	if err := tree.AddChild(root); err != nil {
		return nil, err
	}
	return tree, nil
}
