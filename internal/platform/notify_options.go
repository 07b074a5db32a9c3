// Package platform delivers desktop notifications through whatever the host
// OS provides.
package platform

import "time"

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "SpriteEdit"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is the sending application shown by the notification centre.
	AppName string
	// IconPath, when non-empty, points to an image shown with the
	// notification. For a sprite this is the file that was opened or saved.
	IconPath string
	// Timeout is how long the notification stays up. Zero means 5s.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 5 * time.Second
	}
	return o.Timeout
}
