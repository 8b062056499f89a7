package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapSource map[string]string

func (m mapSource) GetValue(key string) interface{} {
	if v, ok := m[key]; ok {
		return v
	}
	return nil
}

func (m mapSource) Name() string {
	return "map"
}

func TestLoadValuePrecedence(t *testing.T) {
	manager := NewConfigManager()
	str := manager.RegisterOption("yagmod.driver", "driver", "postgres")
	num := manager.RegisterOption("yagmod.num", "num", 5)
	flag := manager.RegisterOption("yagmod.flag", "flag", false)

	first := mapSource{"yagmod.driver": "sqlite", "yagmod.num": "10"}
	second := mapSource{"yagmod.num": "20", "yagmod.flag": "yes"}
	manager.AddSource(first)
	manager.AddSource(second)
	manager.Load()

	assert.Equal(t, "sqlite", str.GetString())
	assert.Equal(t, 20, num.GetInt(), "last added source wins")
	assert.True(t, flag.GetBool())
	assert.Equal(t, "map", str.ConfigSource.Name())
}

func TestLoadValueDefaults(t *testing.T) {
	manager := NewConfigManager()
	num := manager.RegisterOption("yagmod.num", "num", 5)
	manager.Load()

	assert.Equal(t, 5, num.GetInt())
	assert.Nil(t, num.ConfigSource)
}

func TestEnvSource(t *testing.T) {
	t.Setenv("YAGMOD_DB_DSN", "file:test.db")

	src := &EnvSource{}
	assert.Equal(t, "file:test.db", src.GetValue("yagmod.db_dsn"))
	assert.Nil(t, src.GetValue("yagmod.not_set_anywhere"))
}

func TestSortedOptions(t *testing.T) {
	manager := NewConfigManager()
	manager.RegisterOption("b", "", "")
	manager.RegisterOption("a", "", "")
	manager.RegisterOption("c", "", "")

	opts := manager.SortedOptions()
	if assert.Len(t, opts, 3) {
		assert.Equal(t, "a", opts[0].Name)
		assert.Equal(t, "c", opts[2].Name)
	}
}
