package biz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/datawarden/datawarden/internal/dispatch"
)

func TestStatsReporterCronExpr(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     string
	}{
		{name: "default", interval: 0, want: "*/5 * * * *"},
		{name: "one minute", interval: time.Minute, want: "*/1 * * * *"},
		{name: "ten minutes", interval: 10 * time.Minute, want: "*/10 * * * *"},
		{name: "uneven interval falls back", interval: 7 * time.Minute, want: "*/5 * * * *"},
		{name: "sub minute falls back", interval: 30 * time.Second, want: "*/5 * * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &StatsReporter{
				history:  dispatch.NewHistory(),
				interval: tt.interval,
			}
			assert.Equal(t, tt.want, reporter.cronExpr())
		})
	}
}
