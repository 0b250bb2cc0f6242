// Package notify gates OS-level alerts behind user opt-in and permission.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotificationsUnsupported indicates no notification backend is available.
var ErrNotificationsUnsupported = errors.New("notifications unsupported")

// Permission mirrors the browser notification permission states.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Sender delivers a notification to the OS.
type Sender interface {
	Send(title, body string) error
}

// Authorizer is implemented by senders that must ask before alerting.
type Authorizer interface {
	RequestPermission(ctx context.Context) (Permission, error)
}

// Gateway tracks the permission state and forwards notifications.
type Gateway struct {
	mu         sync.Mutex
	sender     Sender
	permission Permission
}

// NewGateway creates a gateway for sender. A nil sender means notifications
// are unavailable and permission requests are denied.
func NewGateway(sender Sender) *Gateway {
	return &Gateway{sender: sender, permission: PermissionDefault}
}

// NewGrantedGateway creates a gateway whose permission is already granted.
func NewGrantedGateway(sender Sender) *Gateway {
	gateway := NewGateway(sender)
	if sender != nil {
		gateway.permission = PermissionGranted
	}
	return gateway
}

// Permission returns the current permission state.
func (gateway *Gateway) Permission() Permission {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return gateway.permission
}

// RequestPermission asks for permission if it has not been decided yet and
// returns the resulting state.
func (gateway *Gateway) RequestPermission(ctx context.Context) (Permission, error) {
	gateway.mu.Lock()
	current := gateway.permission
	sender := gateway.sender
	gateway.mu.Unlock()

	if current != PermissionDefault {
		return current, nil
	}
	if sender == nil {
		gateway.setPermission(PermissionDenied)
		return PermissionDenied, ErrNotificationsUnsupported
	}

	result := PermissionGranted
	if authorizer, ok := sender.(Authorizer); ok {
		decided, err := authorizer.RequestPermission(ctx)
		if err != nil {
			return PermissionDefault, fmt.Errorf("request notification permission: %w", err)
		}
		result = decided
	}
	gateway.setPermission(result)
	return result, nil
}

// Notify sends an alert when permission is granted. Without permission it
// does nothing.
func (gateway *Gateway) Notify(title, body string) error {
	gateway.mu.Lock()
	sender := gateway.sender
	granted := gateway.permission == PermissionGranted
	gateway.mu.Unlock()

	if !granted || sender == nil {
		return nil
	}
	if err := sender.Send(title, body); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func (gateway *Gateway) setPermission(permission Permission) {
	gateway.mu.Lock()
	gateway.permission = permission
	gateway.mu.Unlock()
}
