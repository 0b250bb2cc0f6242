package platform

import (
	"errors"
	"testing"
	"time"
)

func TestAcquireSingleInstance(t *testing.T) {
	const app = "FocusHubTest"
	store := t.TempDir()

	guard, err := AcquireSingleInstance(app, store)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	if _, err := AcquireSingleInstance(app, store); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second acquire error = %v, want ErrAlreadyRunning", err)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	again, err := AcquireSingleInstance(app, store)
	if err != nil {
		t.Fatalf("acquire after release error = %v", err)
	}
	_ = again.Release()
}

func TestAcquireSingleInstance_SecondLaunchActivatesHolder(t *testing.T) {
	const app = "FocusHubActivate"
	store := t.TempDir()

	guard, err := AcquireSingleInstance(app, store)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	activated := make(chan struct{}, 1)
	guard.OnActivate(func() {
		activated <- struct{}{}
	})

	if _, err := AcquireSingleInstance(app, store); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second acquire error = %v, want ErrAlreadyRunning", err)
	}

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("holder was not asked to show itself")
	}
}

func TestAcquireSingleInstance_StoresAreIndependent(t *testing.T) {
	const app = "FocusHubStores"
	first, err := AcquireSingleInstance(app, t.TempDir())
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer first.Release()

	second, err := AcquireSingleInstance(app, t.TempDir())
	if err != nil {
		t.Skipf("port unavailable or colliding: %v", err)
	}
	defer second.Release()

	if first.Address() == second.Address() {
		t.Errorf("both stores bound %s", first.Address())
	}
}

func TestPortFromName(t *testing.T) {
	for _, name := range []string{"", "FocusHub", "FocusHub\x00/tmp/a"} {
		port := portFromName(name)
		if port < 20000 || port > 39999 {
			t.Errorf("portFromName(%q) = %d out of range", name, port)
		}
		if portFromName(name) != port {
			t.Errorf("portFromName(%q) not deterministic", name)
		}
	}
}

func TestService_Dirs(t *testing.T) {
	service := NewService()
	configDir, err := service.ConfigDir("FocusHub")
	if err != nil {
		t.Skipf("no config dir: %v", err)
	}
	if got := lastElem(configDir); got != "FocusHub" {
		t.Errorf("ConfigDir() = %q", configDir)
	}
	cacheDir, err := service.CacheDir("FocusHub")
	if err != nil || lastElem(cacheDir) != "FocusHub" {
		t.Errorf("CacheDir() = %q, %v", cacheDir, err)
	}
}

func lastElem(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
