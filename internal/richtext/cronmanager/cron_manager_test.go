package cronmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJobs(t *testing.T) {
	cm := NewCronManager(JobRegistry{
		"assets_clean": {Func: func(context.Context) error { return nil }, Schedule: "0 1 * * *"},
		"broken":       {Func: func(context.Context) error { return nil }, Schedule: "every day"},
	})

	err := cm.LoadJobs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, []string{"assets_clean"}, cm.Jobs())

	// повторная загрузка не дублирует задачи
	_ = cm.LoadJobs()
	assert.Len(t, cm.dispatcher.Entries(), 1)

	cm.Start()
	next, ok := cm.Next("assets_clean")
	assert.True(t, ok)
	assert.False(t, next.IsZero())

	cm.RemoveJob("assets_clean")
	assert.Empty(t, cm.Jobs())
	_, ok = cm.Next("assets_clean")
	assert.False(t, ok)
	cm.Stop()
}

func TestRunAndStop(t *testing.T) {
	errFail := errors.New("fail")
	var gotCtx context.Context
	cm := NewCronManager(JobRegistry{
		"ok": {Func: func(ctx context.Context) error {
			gotCtx = ctx
			return nil
		}, Schedule: "@hourly"},
		"fail": {Func: func(context.Context) error { return errFail }, Schedule: "@hourly"},
	})

	assert.NoError(t, cm.Run("ok"))
	assert.ErrorIs(t, cm.Run("fail"), errFail)
	assert.Error(t, cm.Run("missing"))

	require.NoError(t, cm.LoadJobs())
	cm.Start()
	cm.Stop()
	assert.ErrorIs(t, gotCtx.Err(), context.Canceled)

	// после остановки обертка задачи не запускает ее
	gotCtx = nil
	cm.wrap("ok", cm.registry["ok"].Func)()
	assert.Nil(t, gotCtx)
}
