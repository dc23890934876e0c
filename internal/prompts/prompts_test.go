package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func TestStoreGetSetReset(t *testing.T) {
	store := NewStore(testLogger(t))

	def, err := store.Get(types.SourceKindGitHub)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(def, "GitHub repository") {
		t.Fatalf("default prompt looks wrong: %q", def[:60])
	}

	if err := store.Set(types.SourceKindGitHub, "custom prompt"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, _ := store.Get(types.SourceKindGitHub)
	if got != "custom prompt" {
		t.Fatalf("Get after Set=%q", got)
	}

	restored, err := store.Reset(types.SourceKindGitHub)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if restored != def {
		t.Fatal("Reset should restore the built-in default")
	}

	if err := store.Set(types.SourceKind("bogus"), "x"); err == nil {
		t.Fatal("Set with unknown kind should fail")
	}
	if err := store.Set(types.SourceKindGitHub, ""); err == nil {
		t.Fatal("Set with empty prompt should fail")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore(testLogger(t))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set(types.SourceKindLlmsTxt, "updated")
		}()
		go func() {
			defer wg.Done()
			prompt, err := store.Get(types.SourceKindLlmsTxt)
			if err != nil || prompt == "" {
				t.Errorf("concurrent Get failed: %q, %v", prompt, err)
			}
		}()
	}
	wg.Wait()
}

func TestStoreLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	if err := os.WriteFile(path, []byte("github: seeded github prompt\nllms-txt: seeded llms prompt\nunknown: ignored\n"), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	store := NewStore(testLogger(t))
	if err := store.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got, _ := store.Get(types.SourceKindGitHub)
	if got != "seeded github prompt" {
		t.Fatalf("seeded prompt not applied: %q", got)
	}

	// Reset still restores the built-in default, not the seeded value.
	restored, _ := store.Reset(types.SourceKindGitHub)
	if restored == "seeded github prompt" {
		t.Fatal("Reset should restore built-in default")
	}

	if err := store.LoadFile(filepath.Join(dir, "missing.yaml")); err != nil {
		t.Fatalf("missing seed file should not error: %v", err)
	}
}

func TestBuildEmbedsSourceContextAndGuard(t *testing.T) {
	store := NewStore(testLogger(t))
	cases := []struct {
		name string
		kind types.SourceKind
	}{
		{name: "github", kind: types.SourceKindGitHub},
		{name: "llms_txt", kind: types.SourceKindLlmsTxt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pair, err := Build("SOURCE BLOB", "learn the basics", tc.kind, store)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if pair.System == "" {
				t.Fatal("system prompt empty")
			}
			if !strings.Contains(pair.User, "SOURCE BLOB") {
				t.Fatal("user prompt missing source blob")
			}
			if !strings.Contains(pair.User, "learn the basics") {
				t.Fatal("user prompt missing user context")
			}
			if !strings.Contains(pair.User, GuardInstruction) {
				t.Fatal("user prompt missing guard instruction")
			}
		})
	}
}

func TestBuildUnknownKind(t *testing.T) {
	store := NewStore(testLogger(t))
	if _, err := Build("blob", "ctx", types.SourceKind("nope"), store); err == nil {
		t.Fatal("Build with unknown kind should fail")
	}
}
