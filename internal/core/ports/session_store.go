package ports

import "context"

// SessionStore persists the identifier of the signed-in user for one device.
type SessionStore interface {
	Save(ctx context.Context, identifier string) error
	Clear(ctx context.Context) error
	// Read reports found=false when no session is persisted.
	Read(ctx context.Context) (identifier string, found bool, err error)
}

// SessionRegistry hands out the SessionStore bound to a device.
type SessionRegistry interface {
	ForDevice(deviceID string) SessionStore
	Ping(ctx context.Context) error
}
