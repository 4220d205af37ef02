package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sizebudget/internal/pipeline"
)

func newModel(t *testing.T, manifests ...string) *progressModel {
	t.Helper()
	m, ok := NewProgressModel("checking budgets", manifests, nil).(*progressModel)
	require.True(t, ok)
	return m
}

func TestApplyEvent(t *testing.T) {
	m := newModel(t, "a.json", "b.json")

	m.applyEvent(pipeline.Event{File: "a.json", Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
	assert.Equal(t, "loading", m.items[0].status)
	m.applyEvent(pipeline.Event{File: "a.json", Stage: pipeline.StageLoad, Status: pipeline.StatusDone})
	assert.Equal(t, "loaded", m.items[0].status)
	assert.Equal(t, 0, m.finished)

	m.applyEvent(pipeline.Event{File: "a.json", Stage: pipeline.StageEvaluate, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.json", Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: errors.New("boom")})
	m.applyEvent(pipeline.Event{File: "unknown.json", Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
	m.applyEvent(pipeline.Event{Stage: pipeline.StageEvaluate, Status: pipeline.StatusDone})

	assert.Equal(t, "done", m.items[0].status)
	assert.Equal(t, "error", m.items[1].status)
	assert.Equal(t, 2, m.finished)
	assert.Equal(t, 1, m.failed)

	// финальное состояние не откатывается поздними событиями
	m.applyEvent(pipeline.Event{File: "a.json", Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
	assert.Equal(t, "done", m.items[0].status)
	assert.Equal(t, 2, m.finished)
}

func TestView(t *testing.T) {
	m := newModel(t, "dist/"+strings.Repeat("x", 200)+".json")
	m.width = 40
	m.applyEvent(pipeline.Event{File: m.items[0].path, Stage: pipeline.StageLoad, Status: pipeline.StatusError})
	m.done = true

	view := m.View()
	assert.Contains(t, view, "done: checking budgets (1/1), 1 failed")
	assert.Contains(t, view, "...")
	assert.Empty(t, newModel(t).View())
}

func TestProgressOf(t *testing.T) {
	assert.Equal(t, 0.0, progressOf("", pipeline.StatusQueued))
	assert.Equal(t, 0.5, progressOf(pipeline.StageLoad, pipeline.StatusDone))
	assert.Equal(t, 1.0, progressOf(pipeline.StageLoad, pipeline.StatusError))
	assert.Equal(t, 1.0, progressOf(pipeline.StageEvaluate, pipeline.StatusDone))
}
