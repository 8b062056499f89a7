package moderation

import (
	"bytes"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/botlabs-gg/yagmod/common"
	"github.com/jonas747/template"
)

const DefaultDMMessage = "You have been {{.ModAction}}\n**Reason:** {{.Reason}}"

const dmMaxOps = 10000

// RenderDM executes a direct message template for an action.
//
// Available data: .ModAction, .Reason, .Duration and .HumanDuration
func RenderDM(source string, kind Kind, reason string, duration time.Duration) (string, error) {
	if source == "" {
		source = DefaultDMMessage
	}

	parsed, err := template.New("dm").Parse(source)
	if err != nil {
		return "", errors.WithMessage(err, "Failed parsing template")
	}
	parsed = parsed.MaxOps(dmMaxOps)

	data := map[string]interface{}{
		"ModAction": ActionFor(kind),
		"Reason":    reason,
	}

	if duration > 0 {
		data["Duration"] = duration
		data["HumanDuration"] = common.HumanizeDuration(duration)
	} else {
		data["Duration"] = 0
		data["HumanDuration"] = "permanently"
	}

	var buf bytes.Buffer
	err = parsed.Execute(&buf, data)
	if err != nil {
		return "", errors.WithMessage(err, "Failed executing template")
	}

	return strings.TrimSpace(buf.String()), nil
}
