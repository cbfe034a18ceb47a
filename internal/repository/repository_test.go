package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"pgregory.net/rapid"

	"taskmind/internal/store"
	"taskmind/internal/task"
)

var allStatuses = []string{"pending", "in_progress", "completed"}

func seededRepository(t *rapid.T) (*Repository, *store.MemoryStore) {
	n := rapid.IntRange(0, 10).Draw(t, "n")
	tasks := make([]task.Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, task.Task{
			ID:          fmt.Sprintf("seed-%d", i),
			Title:       rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "title"),
			Description: rapid.StringMatching(`[a-z ]{1,20}`).Draw(t, "description"),
			Status:      task.Status(rapid.SampledFrom(allStatuses).Draw(t, "status")),
			Priority:    task.PriorityMedium,
		})
	}
	mem := store.NewMemoryStore(tasks...)
	return New(mem), mem
}

func TestCreate_AssignsUniqueIDsAndDefaults(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		repo, _ := seededRepository(rt)
		seen := map[string]struct{}{}
		for _, existing := range repo.List(ctx, "") {
			seen[existing.ID] = struct{}{}
		}
		count := rapid.IntRange(1, 8).Draw(rt, "count")
		for i := 0; i < count; i++ {
			status := rapid.SampledFrom([]string{"", "bogus", "pending", "completed", "in progress"}).Draw(rt, "status")
			priority := rapid.SampledFrom([]string{"", "urgent", "low", "high"}).Draw(rt, "priority")
			created, err := repo.Create(ctx, task.CreateInput{Title: "x", Description: "y", Status: status, Priority: priority})
			if err != nil {
				rt.Fatalf("Create failed: %v", err)
			}
			if _, dup := seen[created.ID]; dup || created.ID == "" {
				rt.Fatalf("id %q is not fresh", created.ID)
			}
			seen[created.ID] = struct{}{}
			if created.Status != task.StatusOrDefault(status) {
				rt.Fatalf("status %q coerced to %q", status, created.Status)
			}
			if created.Priority != task.PriorityOrDefault(priority) {
				rt.Fatalf("priority %q coerced to %q", priority, created.Priority)
			}
		}
	})
}

func TestCreate_BogusStatusFallsBackToPending(t *testing.T) {
	repo := New(store.NewMemoryStore())
	created, err := repo.Create(context.Background(), task.CreateInput{Title: "x", Description: "y", Status: "bogus"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != task.StatusPending || created.Priority != task.PriorityMedium {
		t.Fatalf("unexpected defaults: %+v", created)
	}
}

func TestCreate_MissingFieldsDoesNotPersist(t *testing.T) {
	mem := store.NewMemoryStore()
	repo := New(mem)
	_, err := repo.Create(context.Background(), task.CreateInput{Title: "x"})
	if !task.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if mem.Saves() != 0 {
		t.Fatalf("expected no save, got %d", mem.Saves())
	}
}

func TestCreate_RegeneratesCollidingID(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	next := 0
	mem := store.NewMemoryStore(task.Task{ID: "dup", Title: "t", Description: "d", Status: task.StatusPending, Priority: task.PriorityLow})
	repo := New(mem, WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	created, err := repo.Create(context.Background(), task.CreateInput{Title: "x", Description: "y"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != "fresh" {
		t.Fatalf("expected fresh id, got %q", created.ID)
	}
}

func TestCreate_SaveFailureReturnsError(t *testing.T) {
	mem := store.NewMemoryStore()
	mem.SaveErr = errors.New("disk full")
	repo := New(mem)
	_, err := repo.Create(context.Background(), task.CreateInput{Title: "x", Description: "y"})
	if err == nil || !errors.Is(err, mem.SaveErr) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
}

func TestList_FilterReturnsExactSubset(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		repo, mem := seededRepository(rt)
		filter := rapid.SampledFrom(allStatuses).Draw(rt, "filter")
		got := repo.List(ctx, filter)
		want := make([]task.Task, 0)
		for _, tk := range mem.Load(ctx).Tasks {
			if string(tk.Status) == filter {
				want = append(want, tk)
			}
		}
		if !reflect.DeepEqual(got, want) {
			rt.Fatalf("filter %q mismatch:\nwant %#v\ngot  %#v", filter, want, got)
		}
	})
}

func TestList_UnknownFilterMatchesNothing(t *testing.T) {
	repo := New(store.NewMemoryStore(task.Task{ID: "a", Title: "t", Description: "d", Status: task.StatusPending, Priority: task.PriorityLow}))
	if got := repo.List(context.Background(), "done"); len(got) != 0 {
		t.Fatalf("expected no tasks, got %#v", got)
	}
}

func TestUpdateStatus_UnknownIDOrInvalidStatusLeavesCollection(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		repo, mem := seededRepository(rt)
		before := mem.Load(ctx)

		_, err := repo.UpdateStatus(ctx, "missing-id", "completed")
		if !task.IsNotFound(err) {
			rt.Fatalf("expected not found, got %v", err)
		}
		if len(before.Tasks) > 0 {
			_, err = repo.UpdateStatus(ctx, before.Tasks[0].ID, "done")
			if !task.IsValidation(err) {
				rt.Fatalf("expected validation error, got %v", err)
			}
		}
		if after := mem.Load(ctx); !reflect.DeepEqual(after, before) {
			rt.Fatalf("collection changed")
		}
	})
}

func TestUpdateStatus_ChangesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore(
		task.Task{ID: "a", Title: "ta", Description: "da", Status: task.StatusPending, Priority: task.PriorityLow},
		task.Task{ID: "b", Title: "tb", Description: "db", Status: task.StatusPending, Priority: task.PriorityHigh},
	)
	repo := New(mem)
	updated, err := repo.UpdateStatus(ctx, "b", "in progress")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != task.StatusInProgress || updated.Title != "tb" {
		t.Fatalf("unexpected updated task: %+v", updated)
	}
	tasks := mem.Load(ctx).Tasks
	if tasks[0].Status != task.StatusPending || tasks[1].Status != task.StatusInProgress {
		t.Fatalf("unexpected stored statuses: %+v", tasks)
	}
}

func TestDelete_SecondDeleteReportsNotFound(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		repo, mem := seededRepository(rt)
		created, err := repo.Create(ctx, task.CreateInput{Title: "x", Description: "y"})
		if err != nil {
			rt.Fatalf("Create failed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			rt.Fatalf("first Delete failed: %v", err)
		}
		afterFirst := mem.Load(ctx)
		if afterFirst.IndexOf(created.ID) >= 0 {
			rt.Fatalf("task still present")
		}
		if err := repo.Delete(ctx, created.ID); !task.IsNotFound(err) {
			rt.Fatalf("expected not found on second delete, got %v", err)
		}
		if afterSecond := mem.Load(ctx); !reflect.DeepEqual(afterSecond, afterFirst) {
			rt.Fatalf("second delete changed the collection")
		}
	})
}

func TestDelete_KeepsOrderOfRemainingTasks(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore(
		task.Task{ID: "a", Title: "t", Description: "d", Status: task.StatusPending, Priority: task.PriorityLow},
		task.Task{ID: "b", Title: "t", Description: "d", Status: task.StatusPending, Priority: task.PriorityLow},
		task.Task{ID: "c", Title: "t", Description: "d", Status: task.StatusPending, Priority: task.PriorityLow},
	)
	repo := New(mem)
	if err := repo.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	tasks := mem.Load(ctx).Tasks
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[1].ID != "c" {
		t.Fatalf("unexpected remaining tasks: %+v", tasks)
	}
}

func TestCreate_ConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	repo := New(mem)
	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.Create(ctx, task.CreateInput{Title: fmt.Sprintf("t%d", i), Description: "d"}); err != nil {
				t.Errorf("Create failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
	if got := len(repo.List(ctx, "")); got != writers {
		t.Fatalf("expected %d tasks, got %d", writers, got)
	}
}
