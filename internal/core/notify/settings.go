package notify

import (
	"context"

	"focushub/internal/storage"
)

// Settings owns the notificationsEnabled preference.
type Settings struct {
	store   *storage.Store
	gateway *Gateway
}

// NewSettings binds the preference to a gateway.
func NewSettings(store *storage.Store, gateway *Gateway) *Settings {
	return &Settings{store: store, gateway: gateway}
}

// NotificationsEnabled reports the stored opt-in flag.
func (settings *Settings) NotificationsEnabled() bool {
	return settings.store.GetBool(storage.KeyNotificationsEnabled, false)
}

// Effective reports what the toggle should show: opted in and permitted.
func (settings *Settings) Effective() bool {
	return settings.NotificationsEnabled() && settings.gateway.Permission() == PermissionGranted
}

// SetEnabled stores the user's choice. Enabling requests permission first when
// it is undecided; the stored flag follows the outcome. It returns the value
// the toggle should now show.
func (settings *Settings) SetEnabled(ctx context.Context, enabled bool) (bool, error) {
	var requestErr error
	if enabled && settings.gateway.Permission() == PermissionDefault {
		permission, err := settings.gateway.RequestPermission(ctx)
		requestErr = err
		enabled = permission == PermissionGranted
	}
	if err := settings.store.SetBool(storage.KeyNotificationsEnabled, enabled); err != nil {
		return enabled, err
	}
	return enabled && settings.gateway.Permission() == PermissionGranted, requestErr
}
