package config

import (
	"sort"
	"strconv"
	"strings"
)

// ConfigSource provides raw values for options, a nil return means the source does not have the key
type ConfigSource interface {
	GetValue(key string) interface{}
	Name() string
}

type ConfigOption struct {
	Name         string
	Description  string
	DefaultValue interface{}
	LoadedValue  interface{}
	Manager      *ConfigManager

	// The source the loaded value came from, nil if the default is in use
	ConfigSource ConfigSource
}

// LoadValue walks the sources from the last added to the first, the first one that has the key wins
func (opt *ConfigOption) LoadValue() {
	newVal := opt.DefaultValue
	opt.ConfigSource = nil

	for i := len(opt.Manager.sources) - 1; i >= 0; i-- {
		source := opt.Manager.sources[i]

		v := source.GetValue(opt.Name)
		if v != nil {
			newVal = v
			opt.ConfigSource = source
			break
		}
	}

	// parse ahead of time
	switch opt.DefaultValue.(type) {
	case int:
		newVal = intVal(newVal)
	case bool:
		newVal = boolVal(newVal)
	}

	opt.LoadedValue = newVal
}

func (opt *ConfigOption) GetString() string {
	return strVal(opt.LoadedValue)
}

func (opt *ConfigOption) GetInt() int {
	return intVal(opt.LoadedValue)
}

func (opt *ConfigOption) GetBool() bool {
	return boolVal(opt.LoadedValue)
}

type ConfigManager struct {
	sources []ConfigSource
	Options map[string]*ConfigOption
}

func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		Options: make(map[string]*ConfigOption),
	}
}

func (c *ConfigManager) AddSource(source ConfigSource) {
	c.sources = append(c.sources, source)
}

func (c *ConfigManager) RegisterOption(name, desc string, defaultValue interface{}) *ConfigOption {
	opt := &ConfigOption{
		Name:         name,
		Description:  desc,
		DefaultValue: defaultValue,
		Manager:      c,
	}

	c.Options[name] = opt
	return opt
}

// Load (re)loads every registered option from the sources
func (c *ConfigManager) Load() {
	for _, v := range c.Options {
		v.LoadValue()
	}
}

// SortedOptions returns the registered options sorted by name
func (c *ConfigManager) SortedOptions() []*ConfigOption {
	out := make([]*ConfigOption, 0, len(c.Options))
	for _, v := range c.Options {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

func strVal(i interface{}) string {
	switch t := i.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case Stringer:
		return t.String()
	}

	return ""
}

type Stringer interface {
	String() string
}

func intVal(i interface{}) int {
	switch t := i.(type) {
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return int(n)
	case int:
		return t
	}

	return 0
}

func boolVal(i interface{}) bool {
	switch t := i.(type) {
	case string:
		lower := strings.ToLower(strings.TrimSpace(t))
		if lower == "true" || lower == "yes" || lower == "on" || lower == "enabled" || lower == "1" {
			return true
		}

		return false
	case int:
		return t > 0
	case bool:
		return t
	}

	return false
}
