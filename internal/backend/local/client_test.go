package local

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"todo/internal/config"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/store"
)

func newJSONClient(t *testing.T, opts Options) (*Client, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.json")
	st, err := store.NewJSONFile(path)
	require.NoError(t, err)

	c := New(st, opts)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	return c, path
}

func TestAddTask_IDsFollowCount(t *testing.T) {
	t.Parallel()

	c, _ := newJSONClient(t, Options{})
	ctx := context.Background()

	for n := 1; n <= 25; n++ {
		task, err := c.AddTask(ctx, "task")
		require.NoError(t, err)
		require.Equal(t, n, task.ID)
		require.False(t, task.Completed)

		tasks, err := c.ListTasks(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, n)
		require.Equal(t, n, tasks[n-1].ID)
	}
}

func TestScenario_BuyMilkWalkDog(t *testing.T) {
	t.Parallel()

	c, _ := newJSONClient(t, Options{})
	ctx := context.Background()

	_, err := c.AddTask(ctx, "buy milk")
	require.NoError(t, err)
	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{{ID: 1, Description: "buy milk"}}, tasks)

	_, err = c.AddTask(ctx, "walk dog")
	require.NoError(t, err)
	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{
		{ID: 1, Description: "buy milk"},
		{ID: 2, Description: "walk dog"},
	}, tasks)

	require.NoError(t, c.CompleteTask(ctx, 1))
	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{
		{ID: 1, Description: "buy milk", Completed: true},
		{ID: 2, Description: "walk dog"},
	}, tasks)

	require.NoError(t, c.DeleteTask(ctx, 1))
	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{{ID: 2, Description: "walk dog"}}, tasks)
}

func TestCompleteTask_OnlyTargetChanges(t *testing.T) {
	t.Parallel()

	c, _ := newJSONClient(t, Options{})
	ctx := context.Background()
	for _, d := range []string{"a", "b", "c"} {
		_, err := c.AddTask(ctx, d)
		require.NoError(t, err)
	}

	require.NoError(t, c.CompleteTask(ctx, 2))

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{
		{ID: 1, Description: "a"},
		{ID: 2, Description: "b", Completed: true},
		{ID: 3, Description: "c"},
	}, tasks)
}

func TestCompleteTask_NotFoundLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	c, path := newJSONClient(t, Options{})
	ctx := context.Background()
	_, err := c.AddTask(ctx, "a")
	require.NoError(t, err)
	_, err = c.AddTask(ctx, "b")
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)
	infoBefore, err := os.Stat(path)
	require.NoError(t, err)

	err = c.CompleteTask(ctx, 99)
	require.True(t, errors.Is(err, service.ErrNotFound), "want ErrNotFound, got %v", err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
	infoAfter, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, infoBefore.ModTime(), infoAfter.ModTime())
}

func TestDeleteTask_PreservesOrder(t *testing.T) {
	t.Parallel()

	c, _ := newJSONClient(t, Options{})
	ctx := context.Background()
	for _, d := range []string{"a", "b", "c", "d"} {
		_, err := c.AddTask(ctx, d)
		require.NoError(t, err)
	}

	require.NoError(t, c.DeleteTask(ctx, 2))

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{
		{ID: 1, Description: "a"},
		{ID: 3, Description: "c"},
		{ID: 4, Description: "d"},
	}, tasks)

	err = c.DeleteTask(ctx, 2)
	require.True(t, errors.Is(err, service.ErrNotFound), "want ErrNotFound, got %v", err)
}

func TestIDPolicyCount_ReusesIDAfterDelete(t *testing.T) {
	t.Parallel()

	c, _ := newJSONClient(t, Options{IDPolicy: config.IDPolicyCount})
	ctx := context.Background()
	for _, d := range []string{"a", "b", "c"} {
		_, err := c.AddTask(ctx, d)
		require.NoError(t, err)
	}
	require.NoError(t, c.DeleteTask(ctx, 1))

	task, err := c.AddTask(ctx, "d")
	require.NoError(t, err)
	require.Equal(t, 3, task.ID)

	// The first task with a duplicated id wins.
	require.NoError(t, c.CompleteTask(ctx, 3))
	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{
		{ID: 2, Description: "b"},
		{ID: 3, Description: "c", Completed: true},
		{ID: 3, Description: "d"},
	}, tasks)
}

func TestIDPolicyMax_AvoidsLiveCollision(t *testing.T) {
	t.Parallel()

	c, _ := newJSONClient(t, Options{IDPolicy: config.IDPolicyMax})
	ctx := context.Background()
	for _, d := range []string{"a", "b", "c"} {
		_, err := c.AddTask(ctx, d)
		require.NoError(t, err)
	}
	require.NoError(t, c.DeleteTask(ctx, 1))

	task, err := c.AddTask(ctx, "d")
	require.NoError(t, err)
	require.Equal(t, 4, task.ID)
}

func TestLoad_CorruptFileIsEmptyWhenLenient(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	c, path := newJSONClient(t, Options{Logger: logging.New(&logBuf, true)})
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	ctx := context.Background()
	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Empty(t, tasks)
	require.True(t, strings.Contains(logBuf.String(), "cant load tasks"), "log: %s", logBuf.String())

	task, err := c.AddTask(ctx, "fresh start")
	require.NoError(t, err)
	require.Equal(t, 1, task.ID)

	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{{ID: 1, Description: "fresh start"}}, tasks)
}

func TestAddTask_KeepsTasksWithUnknownFields(t *testing.T) {
	t.Parallel()

	c, path := newJSONClient(t, Options{})
	ctx := context.Background()

	content := `[{"id":1,"description":"buy milk","completed":false,"priority":2},` +
		`{"id":2,"description":"walk dog","completed":true,"priority":1}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	task, err := c.AddTask(ctx, "call mom")
	require.NoError(t, err)
	require.Equal(t, 3, task.ID)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{
		{ID: 1, Description: "buy milk"},
		{ID: 2, Description: "walk dog", Completed: true},
		{ID: 3, Description: "call mom"},
	}, tasks)
}

func TestCompleteTask_StoredIDZero(t *testing.T) {
	t.Parallel()

	c, path := newJSONClient(t, Options{})
	ctx := context.Background()

	content := `[{"id":0,"description":"imported","completed":false}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, c.CompleteTask(ctx, 0))

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{{ID: 0, Description: "imported", Completed: true}}, tasks)
}

func TestLoad_CorruptFileFailsWhenStrict(t *testing.T) {
	t.Parallel()

	c, path := newJSONClient(t, Options{Strict: true})
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	ctx := context.Background()
	_, err := c.ListTasks(ctx)
	require.True(t, errors.Is(err, store.ErrCorrupt), "want ErrCorrupt, got %v", err)

	_, err = c.AddTask(ctx, "x")
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "not json", string(data))
}

func TestListTasks_EmptyStoreWritesNothing(t *testing.T) {
	t.Parallel()

	c, path := newJSONClient(t, Options{})

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Empty(t, tasks)

	_, err = os.Stat(path)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory in place of the task file makes the rename fail.
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o644))

	st, err := store.NewJSONFile(path)
	require.NoError(t, err)
	c := New(st, Options{})

	_, err = c.AddTask(context.Background(), "x")
	require.Error(t, err)
}

func TestOpen_Bolt(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		File:     filepath.Join(t.TempDir(), "tasks.db"),
		Backend:  store.BackendBolt,
		IDPolicy: config.IDPolicyCount,
	}
	c, err := Open(cfg, logging.New(nil, false))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.AddTask(ctx, "buy milk")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	c, err = Open(cfg, logging.New(nil, false))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Equal(t, []service.Task{{ID: 1, Description: "buy milk"}}, tasks)
}
