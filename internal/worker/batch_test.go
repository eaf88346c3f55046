package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestBatchProcessor_Process(t *testing.T) {
	tasks := make([]Task[string], 0, 6)
	for _, name := range []string{"JPM", "BAC", "C", "WFC", "GS", "MS"} {
		tasks = append(tasks, func(ctx context.Context) (string, error) {
			time.Sleep(time.Duration(len(name)) * time.Millisecond)
			if name == "C" {
				return "", errors.New("unreadable")
			}
			return name + ".txt", nil
		})
	}

	var calls, lastDone int
	outcomes := NewBatchProcessor[string](3).
		OnProgress(func(done, total int, index int, out Outcome[string]) {
			calls++
			lastDone = done
			if total != 6 {
				t.Errorf("total = %d", total)
			}
		}).
		Process(context.Background(), tasks)

	if len(outcomes) != 6 {
		t.Fatalf("expected 6 outcomes, got %d", len(outcomes))
	}
	var values []string
	for i, o := range outcomes {
		if i == 2 {
			if o.Err == nil {
				t.Error("expected error for third task")
			}
			continue
		}
		if o.Err != nil {
			t.Errorf("task %d: %v", i, o.Err)
		}
		values = append(values, o.Value)
	}
	want := []string{"JPM.txt", "BAC.txt", "WFC.txt", "GS.txt", "MS.txt"}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("values = %q, want %q", values, want)
	}
	if calls != 6 || lastDone != 6 {
		t.Errorf("progress calls = %d, last done = %d", calls, lastDone)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	if out := NewBatchProcessor[int](2).Process(context.Background(), nil); len(out) != 0 {
		t.Errorf("expected no outcomes, got %d", len(out))
	}
}

func TestBatchProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task[int]{
		func(ctx context.Context) (int, error) { return 1, nil },
		func(ctx context.Context) (int, error) { return 2, nil },
	}
	for i, o := range NewBatchProcessor[int](1).Process(ctx, tasks) {
		if o.Err == nil && o.Value != i+1 {
			t.Errorf("outcome %d: value %d without error", i, o.Value)
		}
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "symbols.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadListFile(t *testing.T) {
	path := writeTemp(t, "JPM\n# banks\nBAC\n   \n  C  \nJPM\n")

	got, err := ReadListFile(path)
	if err != nil {
		t.Fatalf("ReadListFile: %v", err)
	}
	want := []string{"JPM", "BAC", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReadListFile_Empty(t *testing.T) {
	got, err := ReadListFile(writeTemp(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entries, got %q", got)
	}
}

func TestReadListFile_NonExistent(t *testing.T) {
	if _, err := ReadListFile(filepath.Join(t.TempDir(), "none.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
