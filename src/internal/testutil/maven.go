// Package testutil holds fixtures shared by package tests: Maven archives,
// fake installations and an httptest mirror.
package testutil

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"
	"testing"

	"github.com/mvmtool/mvm/src/internal/constants"
	"github.com/mvmtool/mvm/src/internal/mirror"
)

// LauncherName is the Maven launcher file name on this platform
func LauncherName() string {
	if goruntime.GOOS == constants.OSWindows {
		return constants.BinaryMaven + constants.ExtCmd
	}
	return constants.BinaryMaven
}

// MavenZip builds an archive laid out like apache-maven-<version>-bin.zip
func MavenZip(t testing.TB, version string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	top := constants.InstallDirName(version) + "/"
	files := map[string]string{
		top + constants.BinDir + "/" + LauncherName(): "#!/bin/sh\necho \"Apache Maven " + version + "\"\n",
		top + "lib/maven-core.jar":                    "jar",
		top + "conf/settings.xml":                     "<settings/>",
	}
	for name, content := range files {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate}
		header.SetMode(0644)
		fw, err := w.CreateHeader(header)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// MakeInstall creates root/name/bin/<launcher> holding script and returns root/name
func MakeInstall(t testing.TB, root, name, script string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	binDir := filepath.Join(dir, constants.BinDir)
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}
	if script == "" {
		script = "#!/bin/sh\n"
	}
	if err := os.WriteFile(filepath.Join(binDir, LauncherName()), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

// MirrorServer serves one archive under /m1/, /m2/ and /m3/, answering
// each mirror with its configured status code (404 when unset).
type MirrorServer struct {
	*httptest.Server
	mu     sync.Mutex
	hits   map[string]int
	status map[string]int
	body   []byte
}

// NewMirrorServer starts a MirrorServer that is closed when the test ends
func NewMirrorServer(t testing.TB, body []byte, status map[string]int) *MirrorServer {
	t.Helper()
	ms := &MirrorServer{hits: make(map[string]int), status: status, body: body}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mirrorName := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")[0]

		ms.mu.Lock()
		ms.hits[mirrorName]++
		code, ok := ms.status[mirrorName]
		ms.mu.Unlock()

		if !ok {
			code = http.StatusNotFound
		}
		w.WriteHeader(code)
		if code == http.StatusOK {
			_, _ = w.Write(ms.body)
		}
	}))
	t.Cleanup(ms.Close)
	return ms
}

// HitCount returns how many requests reached the named mirror
func (ms *MirrorServer) HitCount(name string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.hits[name]
}

// Sources lists the three mirrors in order: two versioned, one flat
func (ms *MirrorServer) Sources() []mirror.Source {
	return []mirror.Source{
		{BaseURL: ms.URL + "/m1/", VersionSubpath: true},
		{BaseURL: ms.URL + "/m2/", VersionSubpath: true},
		{BaseURL: ms.URL + "/m3/"},
	}
}
