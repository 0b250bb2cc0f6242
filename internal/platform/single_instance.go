package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another desktop instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateCommand = "show"
	activateTimeout = 500 * time.Millisecond
)

// InstanceGuard holds the single-instance lock for the desktop dashboard.
// Terminal and CLI front ends do not take it; they share the store instead.
// While held, it answers later launches against the same store by raising
// the running dashboard.
type InstanceGuard struct {
	listener net.Listener
	address  string

	mu         sync.Mutex
	onActivate func()
	done       chan struct{}
}

// AcquireSingleInstance binds a localhost port derived from the app name and
// the preference store path, so separate stores may each have one dashboard.
// When the port is taken, the holder is asked to show its window and
// ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName, storePath string) (*InstanceGuard, error) {
	address := fmt.Sprintf("127.0.0.1:%d", portFromName(appName+"\x00"+storePath))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if activateErr := activateRunning(address); activateErr != nil {
			return nil, fmt.Errorf("%w on %s (activate: %v)", ErrAlreadyRunning, address, activateErr)
		}
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, address)
	}

	guard := &InstanceGuard{
		listener: listener,
		address:  address,
		done:     make(chan struct{}),
	}
	go guard.serve()
	return guard, nil
}

// OnActivate sets the callback run when another launch asks this instance
// to come forward. It runs on the guard's goroutine.
func (guard *InstanceGuard) OnActivate(callback func()) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.onActivate = callback
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) serve() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		guard.handle(conn)
	}
}

func (guard *InstanceGuard) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(activateTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != activateCommand {
		return
	}

	guard.mu.Lock()
	callback := guard.onActivate
	guard.mu.Unlock()
	if callback != nil {
		callback()
	}
}

func activateRunning(address string) error {
	conn, err := net.DialTimeout("tcp", address, activateTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(activateTimeout))
	_, err = conn.Write([]byte(activateCommand + "\n"))
	return err
}

func portFromName(name string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(name))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
