package coupon

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// setupTestFiles creates one plain and one gzipped code file
func setupTestFiles(t *testing.T) (string, string) {
	t.Helper()

	tmpDir := t.TempDir()

	plain := filepath.Join(tmpDir, "codes1.txt")
	if err := os.WriteFile(plain, []byte("# seasonal codes\nSPRING15 0.85\n\nSPRING15 0.8\n"), 0644); err != nil {
		t.Fatalf("failed to create plain file: %v", err)
	}

	gz := filepath.Join(tmpDir, "codes2.gz")
	f, err := os.Create(gz)
	if err != nil {
		t.Fatalf("failed to create gzip file: %v", err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte("HALFOFF 0.5\nVIP30 0.7\n")); err != nil {
		t.Fatalf("failed to write gzip file: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close gzip file: %v", err)
	}

	return plain, gz
}

func TestCatalog_Defaults(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		code     string
		wantRate float64
		wantOK   bool
	}{
		{"SAVE10", 0.9, true},
		{"SAVE20", 0.8, true},
		{"save10", 0, false},
		{" SAVE10", 0, false},
		{"FOO10", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rate, ok := catalog.Lookup(tt.code)
			if ok != tt.wantOK || rate != tt.wantRate {
				t.Errorf("Lookup(%q) = (%v, %v), want (%v, %v)", tt.code, rate, ok, tt.wantRate, tt.wantOK)
			}
		})
	}
}

func TestCatalog_LoadFromFiles(t *testing.T) {
	t.Run("successful load from plain and gzip files", func(t *testing.T) {
		plain, gz := setupTestFiles(t)

		catalog := NewCatalog()
		if err := catalog.LoadFromFiles(context.Background(), []string{plain, gz}); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}

		for code, want := range map[string]float64{
			"SPRING15": 0.8,
			"HALFOFF":  0.5,
			"VIP30":    0.7,
			"SAVE10":   0.9,
			"SAVE20":   0.8,
		} {
			got, ok := catalog.Lookup(code)
			if !ok || got != want {
				t.Errorf("Lookup(%q) = (%v, %v), want (%v, true)", code, got, ok, want)
			}
		}

		stats := catalog.GetStats()
		if stats["total_files"] != 2 {
			t.Errorf("expected 2 files loaded, got %v", stats["total_files"])
		}
		if stats["total_codes"] != 5 {
			t.Errorf("expected 5 codes, got %v", stats["total_codes"])
		}
	})

	t.Run("empty file paths", func(t *testing.T) {
		catalog := NewCatalog()
		if err := catalog.LoadFromFiles(context.Background(), []string{}); err == nil {
			t.Error("expected error for empty file paths, got nil")
		}
	})

	t.Run("non-existent file leaves catalog untouched", func(t *testing.T) {
		plain, _ := setupTestFiles(t)

		catalog := NewCatalog()
		err := catalog.LoadFromFiles(context.Background(), []string{plain, "/non/existent/file.txt"})
		if err == nil {
			t.Fatal("expected error for non-existent file, got nil")
		}
		if _, ok := catalog.Lookup("SPRING15"); ok {
			t.Error("codes from a partial load must not be merged")
		}
	})

	t.Run("malformed line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.txt")
		if err := os.WriteFile(path, []byte("NOPE\n"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		if err := NewCatalog().LoadFromFiles(context.Background(), []string{path}); err == nil {
			t.Error("expected error for malformed line, got nil")
		}
	})

	t.Run("multiplier out of range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.txt")
		if err := os.WriteFile(path, []byte("FREE 0\nDOUBLE 2\n"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		if err := NewCatalog().LoadFromFiles(context.Background(), []string{path}); err == nil {
			t.Error("expected error for out of range multiplier, got nil")
		}
	})

	t.Run("built-in code cannot be redefined", func(t *testing.T) {
		plain, _ := setupTestFiles(t)
		override := filepath.Join(t.TempDir(), "override.txt")
		if err := os.WriteFile(override, []byte("EXTRA5 0.95\nSAVE10 0.5\n"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		catalog := NewCatalog()
		err := catalog.LoadFromFiles(context.Background(), []string{plain, override})
		if err == nil {
			t.Fatal("expected error for built-in code, got nil")
		}
		if !strings.Contains(err.Error(), "line 2: SAVE10 is a built-in code") {
			t.Errorf("unexpected error: %v", err)
		}

		if rate, ok := catalog.Lookup("SAVE10"); !ok || rate != 0.9 {
			t.Errorf("Lookup(SAVE10) = (%v, %v), want (0.9, true)", rate, ok)
		}
		if _, ok := catalog.Lookup("SPRING15"); ok {
			t.Error("codes from a rejected load must not be merged")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		plain, gz := setupTestFiles(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := NewCatalog().LoadFromFiles(ctx, []string{plain, gz}); err == nil {
			t.Error("expected error for cancelled context, got nil")
		}
	})
}

func TestCatalog_Lookup_ConcurrentAccess(t *testing.T) {
	plain, gz := setupTestFiles(t)

	catalog := NewCatalog()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := catalog.LoadFromFiles(context.Background(), []string{plain, gz}); err != nil {
			t.Errorf("failed to load files: %v", err)
		}
	}()

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			codes := []string{"SAVE10", "SAVE20", "NOTEXIST"}
			code := codes[n%len(codes)]

			_, ok := catalog.Lookup(code)
			if code == "NOTEXIST" && ok {
				t.Errorf("expected %s to be unknown", code)
			}
			if code != "NOTEXIST" && !ok {
				t.Errorf("expected %s to be known", code)
			}
		}(i)
	}

	wg.Wait()
}
