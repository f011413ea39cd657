package workflow_test

import (
	"testing"

	"hr-portal/internal/workflow"

	"github.com/stretchr/testify/assert"
)

type req struct {
	ID       string
	Status   string
	Approver string
}

func reqID(r req) string { return r.ID }

func setStatus(status, approver string) func(req) req {
	return func(r req) req {
		r.Status = status
		r.Approver = approver
		return r
	}
}

func TestApply(t *testing.T) {
	records := []req{
		{ID: "1", Status: "Pending"},
		{ID: "2", Status: "Pending"},
		{ID: "3", Status: "Approved", Approver: "Luis"},
	}

	t.Run("exactly one record changes", func(t *testing.T) {
		got, ok := workflow.Apply(records, "2", reqID, setStatus("Approved", "Ana"))
		assert.True(t, ok)
		assert.Len(t, got, len(records))
		assert.Equal(t, records[0], got[0])
		assert.Equal(t, req{ID: "2", Status: "Approved", Approver: "Ana"}, got[1])
		assert.Equal(t, records[2], got[2])

		assert.Equal(t, "Pending", records[1].Status)
	})

	t.Run("terminal record is not guarded", func(t *testing.T) {
		got, ok := workflow.Apply(records, "3", reqID, setStatus("Rejected", "Ana"))
		assert.True(t, ok)
		assert.Equal(t, "Rejected", got[2].Status)
	})

	t.Run("unknown id leaves list unchanged", func(t *testing.T) {
		got, ok := workflow.Apply(records, "404", reqID, setStatus("Approved", "Ana"))
		assert.False(t, ok)
		assert.Equal(t, records, got)
	})
}

func TestMachine(t *testing.T) {
	m := workflow.NewMachine("Pending", map[string][]string{
		"Pending": {"Approved", "Rejected"},
	})

	assert.Equal(t, "Pending", m.Initial())
	assert.True(t, m.Can("Pending", "Approved"))
	assert.True(t, m.Can("Pending", "Rejected"))
	assert.False(t, m.Can("Approved", "Rejected"))
	assert.False(t, m.Can("Rejected", "Approved"))
	assert.False(t, m.Can("Pending", "Pending"))

	assert.True(t, m.Known("Approved"))
	assert.False(t, m.Known("Cancelled"))
	assert.True(t, m.IsTerminal("Rejected"))
	assert.False(t, m.IsTerminal("Pending"))
	assert.False(t, m.IsTerminal("Cancelled"))
}
