package bootstrap_test

import (
	"context"
	"testing"

	"hr-portal/internal/bootstrap"
	"hr-portal/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithActorName(ctx, "Ana López")
	ctx = contextutil.WithUserID(ctx, "user-1")
	audit.Log(ctx, bootstrap.AuditLog{Action: "SERVER_SHUTDOWN", Message: "bye", Meta: map[string]any{"signal": "terminated"}})
	audit.Log(context.Background(), bootstrap.AuditLog{Action: "PING"})

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0]
	assert.Equal(t, "audit", first.LoggerName)
	fields := first.ContextMap()
	assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
	assert.Equal(t, "rid-1", fields["request_id"])
	assert.Equal(t, "Ana López", fields["actor"])
	assert.Equal(t, "user-1", fields["user_id"])

	second := logs.All()[1].ContextMap()
	assert.NotContains(t, second, "request_id")
	assert.NotContains(t, second, "meta")
}
