package appdir

import (
	"strings"
	"testing"
)

func TestOwnerKeyLocal(t *testing.T) {
	if got := OwnerKey(""); got != LocalOwner {
		t.Errorf("OwnerKey(\"\"): got %q, want %q", got, LocalOwner)
	}
}

func TestOwnerKeyDistinct(t *testing.T) {
	a := OwnerKey("ana@example.com")
	b := OwnerKey("ana@example.org")
	if a == b {
		t.Errorf("distinct emails mapped to the same key %q", a)
	}
}

func TestOwnerKeyStable(t *testing.T) {
	a := OwnerKey("you@example.com")
	b := OwnerKey("you@example.com")
	if a != b {
		t.Errorf("OwnerKey not stable: %q vs %q", a, b)
	}
}

func TestOwnerKeyFilesystemSafe(t *testing.T) {
	key := OwnerKey("weird name+tag@example.com")
	for _, c := range []string{"/", "\\", "@", "+", " "} {
		if strings.Contains(key, c) {
			t.Errorf("key %q contains %q", key, c)
		}
	}
}

func TestTasksKey(t *testing.T) {
	got := TasksKey("local")
	if !strings.HasPrefix(got, "tasks") || !strings.HasSuffix(got, "local.json") {
		t.Errorf("TasksKey: got %q", got)
	}
}
