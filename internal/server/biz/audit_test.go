package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/datawarden/datawarden/internal/audit"
)

func TestAuditServiceRecent(t *testing.T) {
	sink := audit.NewMemorySink(8)
	svc := NewAuditService(AuditServiceParams{Recent: sink})

	for i := 0; i < 5; i++ {
		sink.Record(context.Background(), audit.Event{UserID: fmt.Sprintf("u-%d", i)})
	}

	all := svc.Recent(0)
	assert.Len(t, all, 5)
	assert.Equal(t, "u-0", all[0].UserID)

	tail := svc.Recent(2)
	assert.Len(t, tail, 2)
	assert.Equal(t, "u-3", tail[0].UserID)
	assert.Equal(t, "u-4", tail[1].UserID)

	assert.Len(t, svc.Recent(50), 5)
}
