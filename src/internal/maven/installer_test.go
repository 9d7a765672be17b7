package maven

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mvmtool/mvm/src/internal/download"
	"github.com/mvmtool/mvm/src/internal/mirror"
	"github.com/mvmtool/mvm/src/internal/testutil"
	"github.com/mvmtool/mvm/src/internal/versions"
)

func init() {
	download.ShowProgress = false
}

// recorder stands in for the config store
type recorder struct {
	path  string
	calls int
	err   error
}

func (r *recorder) SetVersionToUse(path string) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	r.path = path
	return nil
}

func newInstaller(t *testing.T, root string, ms *testutil.MirrorServer, rec *recorder) *Installer {
	t.Helper()
	opts := Options{
		Root:     root,
		Scanner:  versions.NewScanner(nil),
		Defaults: rec,
	}
	if ms != nil {
		opts.Resolver = mirror.NewResolver(ms.Sources())
		opts.Client = ms.Client()
	}
	return NewInstaller(opts)
}

// leftovers lists hidden temp entries left in root
func leftovers(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestInstall_MirrorFallback(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{
		"m1": http.StatusNotFound,
		"m2": http.StatusInternalServerError,
		"m3": http.StatusOK,
	})
	inst := newInstaller(t, root, ms, &recorder{})

	result, err := inst.Install("3.9.6")
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if result != Installed {
		t.Errorf("Install() = %v, want Installed", result)
	}

	for _, name := range []string{"m1", "m2", "m3"} {
		if got := ms.HitCount(name); got != 1 {
			t.Errorf("mirror %s hit %d times, want 1", name, got)
		}
	}

	registry, err := inst.Scan()
	if err != nil {
		t.Fatal(err)
	}
	entry, ok := registry.Get("3.9.6")
	if !ok {
		t.Fatal("3.9.6 not found after install")
	}
	if want := filepath.Join(root, "apache-maven-3.9.6"); entry.Path != want {
		t.Errorf("Path = %q, want %q", entry.Path, want)
	}
	if names := leftovers(t, root); len(names) != 0 {
		t.Errorf("temporary files left behind: %v", names)
	}
}

func TestInstall_StopsAtFirstSuccess(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "4.0.0"), map[string]int{
		"m1": http.StatusOK,
		"m2": http.StatusOK,
		"m3": http.StatusOK,
	})
	inst := newInstaller(t, root, ms, &recorder{})

	if _, err := inst.Install("4.0.0"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if ms.HitCount("m2") != 0 || ms.HitCount("m3") != 0 {
		t.Errorf("later mirrors should not be contacted: m2=%d m3=%d", ms.HitCount("m2"), ms.HitCount("m3"))
	}
}

func TestInstall_AllSourcesFail(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, nil, map[string]int{
		"m1": http.StatusNotFound,
		"m2": http.StatusForbidden,
		"m3": http.StatusServiceUnavailable,
	})
	inst := newInstaller(t, root, ms, &recorder{})

	_, err := inst.Install("3.9.6")
	if !IsSourcesExhausted(err) {
		t.Fatalf("Install() error = %v, want SourcesExhaustedError", err)
	}

	var exhausted *SourcesExhaustedError
	_ = errors.As(err, &exhausted)
	if len(exhausted.Tried) != 3 {
		t.Errorf("Tried = %v, want 3 URLs", exhausted.Tried)
	}

	var status *download.HTTPStatusError
	if !errors.As(err, &status) {
		t.Fatalf("error should wrap the last HTTPStatusError, got %v", err)
	}
	if status.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("last status = %d, want %d", status.StatusCode, http.StatusServiceUnavailable)
	}
	if names := leftovers(t, root); len(names) != 0 {
		t.Errorf("temporary files left behind: %v", names)
	}
}

func TestInstall_BadArchiveFallsThrough(t *testing.T) {
	root := t.TempDir()
	good := testutil.MavenZip(t, "3.9.6")

	var (
		mu   sync.Mutex
		hits []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, r.URL.Path)
		mu.Unlock()
		if strings.HasPrefix(r.URL.Path, "/broken/") {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
			return
		}
		_, _ = w.Write(good)
	}))
	defer server.Close()

	inst := NewInstaller(Options{
		Root:    root,
		Scanner: versions.NewScanner(nil),
		Resolver: mirror.NewResolver([]mirror.Source{
			{BaseURL: server.URL + "/broken/"},
			{BaseURL: server.URL + "/good/"},
		}),
		Client: server.Client(),
	})

	if _, err := inst.Install("3.9.6"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(hits) != 2 {
		t.Errorf("hits = %v, want both mirrors", hits)
	}
}

func TestInstall_Idempotent(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{"m1": http.StatusOK})
	inst := newInstaller(t, root, ms, &recorder{})

	if result, err := inst.Install("3.9.6"); err != nil || result != Installed {
		t.Fatalf("first Install() = (%v, %v), want Installed", result, err)
	}
	result, err := inst.Install("3.9.6")
	if err != nil {
		t.Fatalf("second Install() error = %v", err)
	}
	if result != AlreadyInstalled {
		t.Errorf("second Install() = %v, want AlreadyInstalled", result)
	}
	if got := ms.HitCount("m1"); got != 1 {
		t.Errorf("mirror hit %d times, want 1 (no re-download)", got)
	}

	registry, err := inst.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if registry.Len() != 1 {
		t.Errorf("Len() = %d, want 1", registry.Len())
	}
}

func TestInstall_InvalidVersion(t *testing.T) {
	inst := newInstaller(t, t.TempDir(), nil, &recorder{})

	for _, v := range []string{"", " 3.9.6", "../3.9.6", "3.9.6/x", ".."} {
		if _, err := inst.Install(v); !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("Install(%q) error = %v, want ErrInvalidVersion", v, err)
		}
	}
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{"m1": http.StatusOK})
	inst := newInstaller(t, root, ms, &recorder{})

	if _, err := inst.Install("3.9.6"); err != nil {
		t.Fatal(err)
	}

	result, err := inst.Remove("3.9.6")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if result != Removed {
		t.Errorf("Remove() = %v, want Removed", result)
	}

	if _, err := os.Stat(filepath.Join(root, "apache-maven-3.9.6")); !os.IsNotExist(err) {
		t.Error("installation directory still exists")
	}
	registry, err := inst.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if registry.Has("3.9.6") {
		t.Error("3.9.6 still reported after Remove")
	}
}

func TestRemove_NotInstalled(t *testing.T) {
	inst := newInstaller(t, t.TempDir(), nil, &recorder{})

	result, err := inst.Remove("3.9.6")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if result != NotInstalled {
		t.Errorf("Remove() = %v, want NotInstalled", result)
	}
}

func TestUse_InstalledVersion(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{"m1": http.StatusOK})
	rec := &recorder{}
	inst := newInstaller(t, root, ms, rec)

	if _, err := inst.Install("3.9.6"); err != nil {
		t.Fatal(err)
	}

	entry, err := inst.Use("3.9.6")
	if err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	want := filepath.Join(root, "apache-maven-3.9.6")
	if entry.Path != want || rec.path != want {
		t.Errorf("Use() path = %q, recorded %q, want %q", entry.Path, rec.path, want)
	}
	if got := ms.HitCount("m1"); got != 1 {
		t.Errorf("mirror hit %d times, want 1", got)
	}
}

func TestUse_TriggersSingleInstall(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{"m2": http.StatusOK})
	rec := &recorder{}
	inst := newInstaller(t, root, ms, rec)

	entry, err := inst.Use("3.9.6")
	if err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if entry.Version != "3.9.6" {
		t.Errorf("Version = %q", entry.Version)
	}
	if ms.HitCount("m1") != 1 || ms.HitCount("m2") != 1 || ms.HitCount("m3") != 0 {
		t.Errorf("hits m1=%d m2=%d m3=%d, want exactly one install attempt",
			ms.HitCount("m1"), ms.HitCount("m2"), ms.HitCount("m3"))
	}
	if rec.calls != 1 || rec.path != filepath.Join(root, "apache-maven-3.9.6") {
		t.Errorf("recorder = %+v", rec)
	}
}

func TestUse_InstallFailureKeepsDefault(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, nil, map[string]int{})
	rec := &recorder{path: "/previous/default"}
	inst := newInstaller(t, root, ms, rec)

	_, err := inst.Use("3.9.6")
	if !IsSourcesExhausted(err) {
		t.Fatalf("Use() error = %v, want SourcesExhaustedError", err)
	}
	if rec.calls != 0 || rec.path != "/previous/default" {
		t.Errorf("default changed after failed install: %+v", rec)
	}
	total := ms.HitCount("m1") + ms.HitCount("m2") + ms.HitCount("m3")
	if total != 3 {
		t.Errorf("total mirror hits = %d, want 3 (one pass)", total)
	}
}

func TestInstall_ReplacesIncompleteInstall(t *testing.T) {
	root := t.TempDir()
	leftover := filepath.Join(root, "apache-maven-3.9.6")
	// No bin/ launcher, so the scanner does not count it as installed
	if err := os.MkdirAll(filepath.Join(leftover, "lib"), 0755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(leftover, "lib", "stale.jar")
	if err := os.WriteFile(stale, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{
		"m1": http.StatusOK,
		"m2": http.StatusOK,
		"m3": http.StatusOK,
	})
	inst := newInstaller(t, root, ms, nil)

	result, err := inst.Install("3.9.6")
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if result != Installed {
		t.Errorf("Install() = %v, want Installed", result)
	}
	if got := ms.HitCount("m1") + ms.HitCount("m2") + ms.HitCount("m3"); got != 1 {
		t.Errorf("total mirror hits = %d, want 1", got)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file should be gone, stat error = %v", err)
	}

	registry, err := inst.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if !registry.Has("3.9.6") {
		t.Error("3.9.6 should be installed after replacing the leftover directory")
	}
}

func TestInstall_LocalConflictStopsMirrorLoop(t *testing.T) {
	root := t.TempDir()
	existing := testutil.MakeInstall(t, root, "apache-maven-3.9.5", "")
	// Every mirror serves an archive whose top-level directory is already taken
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.5"), map[string]int{
		"m1": http.StatusOK,
		"m2": http.StatusOK,
		"m3": http.StatusOK,
	})
	inst := newInstaller(t, root, ms, nil)

	_, err := inst.Install("3.9.6")
	if !errors.Is(err, download.ErrTargetExists) {
		t.Fatalf("Install() error = %v, want ErrTargetExists", err)
	}
	if IsSourcesExhausted(err) {
		t.Error("a local conflict is not a mirror failure")
	}
	if ms.HitCount("m2") != 0 || ms.HitCount("m3") != 0 {
		t.Errorf("later mirrors contacted: m2=%d m3=%d", ms.HitCount("m2"), ms.HitCount("m3"))
	}
	if _, err := os.Stat(filepath.Join(existing, "bin")); err != nil {
		t.Errorf("existing install damaged: %v", err)
	}
	if left := leftovers(t, root); len(left) != 0 {
		t.Errorf("temporary files left behind: %v", left)
	}
}

func TestUse_UnexpectedArchiveLayout(t *testing.T) {
	root := t.TempDir()
	// Archive for another version: installs apache-maven-3.9.5 while 3.9.6 was asked for
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.5"), map[string]int{"m1": http.StatusOK})
	rec := &recorder{}
	inst := newInstaller(t, root, ms, rec)

	if _, err := inst.Use("3.9.6"); err == nil {
		t.Fatal("Use() expected error when the installed directory cannot be found")
	}
	if rec.calls != 0 {
		t.Error("default must not be recorded")
	}
}

func TestUse_RecorderError(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{"m1": http.StatusOK})
	inst := newInstaller(t, root, ms, &recorder{err: errors.New("read-only")})

	if _, err := inst.Use("3.9.6"); err == nil {
		t.Fatal("Use() expected error when the default cannot be saved")
	}
}

func TestEndToEnd(t *testing.T) {
	root := t.TempDir()
	ms := testutil.NewMirrorServer(t, testutil.MavenZip(t, "3.9.6"), map[string]int{"m3": http.StatusOK})
	rec := &recorder{}
	inst := newInstaller(t, root, ms, rec)

	if _, err := inst.Install("3.9.6"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	registry, err := inst.Scan()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "apache-maven-3.9.6")
	if e, ok := registry.Get("3.9.6"); !ok || e.Path != want || registry.Len() != 1 {
		t.Fatalf("after install registry = %v", registry.Entries())
	}

	if _, err := inst.Use("3.9.6"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}
	if rec.path != want {
		t.Errorf("default = %q, want %q", rec.path, want)
	}

	entry, ok, err := inst.DefaultEntry(rec.path)
	if err != nil || !ok || entry.Version != "3.9.6" {
		t.Errorf("DefaultEntry() = (%v, %v, %v)", entry, ok, err)
	}

	if result, err := inst.Remove("3.9.6"); err != nil || result != Removed {
		t.Fatalf("Remove() = (%v, %v)", result, err)
	}

	registry, err = inst.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if registry.Len() != 0 {
		t.Errorf("after remove registry = %v, want empty", registry.Entries())
	}
}

func TestSourcesExhaustedError(t *testing.T) {
	inner := errors.New("boom")
	err := &SourcesExhaustedError{Version: "3.9.6", Tried: []string{"a", "b"}, LastErr: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should reach LastErr")
	}
	if !strings.Contains(err.Error(), "3.9.6") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q", err.Error())
	}

	empty := &SourcesExhaustedError{Version: "3.9.6"}
	if empty.Error() == "" {
		t.Error("Error() should not be empty without LastErr")
	}
}
