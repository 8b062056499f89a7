package moderation

import (
	"context"

	"github.com/botlabs-gg/yagmod/common"
	"github.com/jmoiron/sqlx"
)

type Plugin struct{}

func (p *Plugin) PluginInfo() *common.PluginInfo {
	return &common.PluginInfo{
		Name:     "Moderation",
		SysName:  "moderation",
		Category: common.PluginCategoryModeration,
	}
}

var _ common.PluginWithSchema = (*Plugin)(nil)

var logger = common.GetPluginLogger(&Plugin{})

func (p *Plugin) InitSchemas(ctx context.Context, db *sqlx.DB) error {
	return InitSchemas(ctx, db)
}

func RegisterPlugin() {
	common.RegisterPlugin(&Plugin{})
}

// InitSchemas creates the tables used by the warning store, the audit log and the guild configs
func InitSchemas(ctx context.Context, db *sqlx.DB) error {
	err := common.InitSchemas(ctx, db, "local_incr_ids", common.LocalIDsSchemas(db)...)
	if err != nil {
		return err
	}

	return common.InitSchemas(ctx, db, "moderation", DBSchemas(db)...)
}
