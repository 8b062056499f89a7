package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricsPlatformErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bot_platform_errors_total",
	Help: "Discord API errors returned to the moderation pipeline",
}, []string{"op"})

var metricsMemberLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bot_member_lookups_total",
	Help: "Member lookups by source (state or rest)",
}, []string{"source"})
