package common

import (
	"context"

	"emperror.dev/errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var (
	Plugins []Plugin
)

type PluginCategory struct {
	Name string
}

var (
	PluginCategoryCore       = &PluginCategory{Name: "Core"}
	PluginCategoryModeration = &PluginCategory{Name: "Moderation"}
)

type PluginInfo struct {
	Name     string // Human readable name of the plugin
	SysName  string // snake_case version of the name in lower case
	Category *PluginCategory
}

// Plugin represents a plugin, all plugins needs to implement this at a bare minimum
type Plugin interface {
	PluginInfo() *PluginInfo
}

// RegisterPlugin registers a plugin, should be called when the process is starting up
func RegisterPlugin(plugin Plugin) {
	Plugins = append(Plugins, plugin)
	logrus.Info("Registered plugin: " + plugin.PluginInfo().Name)
}

// PluginWithSchema is implemented by plugins that keep tables in the database
type PluginWithSchema interface {
	Plugin
	InitSchemas(ctx context.Context, db *sqlx.DB) error
}

// InitPluginSchemas creates the tables of every registered plugin that has any
func InitPluginSchemas(ctx context.Context, db *sqlx.DB) error {
	for _, v := range Plugins {
		withSchema, ok := v.(PluginWithSchema)
		if !ok {
			continue
		}

		if err := withSchema.InitSchemas(ctx, db); err != nil {
			return errors.WithMessage(err, v.PluginInfo().SysName)
		}
	}

	return nil
}
