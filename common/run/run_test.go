package run

import (
	"bytes"
	"testing"

	"github.com/botlabs-gg/yagmod/common/config"
	"github.com/stretchr/testify/assert"
)

func TestLogrusSortingFunc(t *testing.T) {
	fields := []string{"guild", "msg", "stck", "level", "actor", "p", "time"}
	logrusSortingFunc(fields)

	assert.Equal(t, []string{"time", "level", "p", "msg", "stck", "actor", "guild"}, fields)
}

func TestWriteConfigDocs(t *testing.T) {
	manager := config.NewConfigManager()
	manager.RegisterOption("yagmod.db_driver", "Database driver", "postgres")
	manager.RegisterOption("yagmod.enabled", "Enabled", false)

	var buf bytes.Buffer
	writeConfigDocs(&buf, manager.SortedOptions())

	assert.Equal(t, "**Database driver** (string, default: postgres)\nYAGMOD_DB_DRIVER\n\n"+
		"**Enabled** (true/false, default: false)\nYAGMOD_ENABLED\n\n", buf.String())
}
