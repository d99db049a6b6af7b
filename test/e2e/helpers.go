//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// E2ETestEnv runs the digestd and digest binaries built from this tree.
type E2ETestEnv struct {
	T          *testing.T
	BinaryDir  string
	ConfigHome string
	ServerURL  string
	APIURL     string
	HTTPClient *http.Client

	server *exec.Cmd
	cancel context.CancelFunc
}

// SetupE2EEnv builds both binaries and starts digestd on a free port.
func SetupE2EEnv(t *testing.T) *E2ETestEnv {
	e := &E2ETestEnv{
		T:          t,
		ConfigHome: t.TempDir(),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	e.BuildBinaries()

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.server = exec.CommandContext(ctx, filepath.Join(e.BinaryDir, "digestd"), "serve")
	e.server.Env = append(e.baseEnv(),
		fmt.Sprintf("DIGEST_PORT=%d", port),
		"DIGEST_LOG_LEVEL=warn",
	)
	e.server.Stdout = io.Discard
	e.server.Stderr = io.Discard
	if err := e.server.Start(); err != nil {
		cancel()
		t.Fatalf("failed to start digestd: %v", err)
	}

	e.ServerURL = fmt.Sprintf("http://127.0.0.1:%d", port)
	e.APIURL = e.ServerURL + "/api/v1"
	waitForServer(t, e.ServerURL, 15*time.Second)

	return e
}

// StopServer kills digestd and waits for it to exit.
func (e *E2ETestEnv) StopServer() {
	if e.cancel != nil {
		e.cancel()
	}
	if e.server != nil && e.server.ProcessState == nil {
		_ = e.server.Wait()
	}
}

// Cleanup stops digestd and removes the binaries.
func (e *E2ETestEnv) Cleanup() {
	e.StopServer()
	if e.BinaryDir != "" {
		os.RemoveAll(e.BinaryDir)
	}
}

// BuildBinaries builds the digest and digestd binaries
func (e *E2ETestEnv) BuildBinaries() {
	tmpDir, err := os.MkdirTemp("", "digest-e2e-*")
	if err != nil {
		e.T.Fatalf("failed to create temp dir: %v", err)
	}
	e.BinaryDir = tmpDir

	for _, name := range []string{"digestd", "digest"} {
		cmd := exec.Command("go", "build", "-o", filepath.Join(tmpDir, name), "./cmd/"+name)
		cmd.Dir = "../.."
		if out, err := cmd.CombinedOutput(); err != nil {
			e.T.Fatalf("failed to build %s: %v\n%s", name, err, out)
		}
	}
}

// baseEnv isolates the binaries from the caller's DIGEST_ settings and
// global config file.
func (e *E2ETestEnv) baseEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "DIGEST_") {
			continue
		}
		env = append(env, kv)
	}
	return append(env,
		"XDG_CONFIG_HOME="+e.ConfigHome,
		"HOME="+e.ConfigHome,
	)
}

// RunDigest runs the digest CLI against the running digestd.
func (e *E2ETestEnv) RunDigest(args ...string) (string, error) {
	return e.RunDigestWithEnv([]string{"DIGEST_API_URL=" + e.APIURL}, args...)
}

// RunDigestWithEnv runs the digest CLI with extra environment entries.
func (e *E2ETestEnv) RunDigestWithEnv(extraEnv []string, args ...string) (string, error) {
	cmd := exec.Command(filepath.Join(e.BinaryDir, "digest"), args...)
	cmd.Dir = e.ConfigHome
	cmd.Env = append(e.baseEnv(), extraEnv...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// GetJSON fetches path from digestd and decodes the body into out. It
// returns the status code.
func (e *E2ETestEnv) GetJSON(path string, out interface{}) (int, error) {
	resp, err := e.HTTPClient.Get(e.ServerURL + path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("HTTP %d: %s: %w", resp.StatusCode, body, err)
		}
	}
	return resp.StatusCode, nil
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
