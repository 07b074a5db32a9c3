//go:build linux || freebsd || openbsd || netbsd || dragonfly

package dialog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest  = "org.freedesktop.portal.Desktop"
	portalPath  = "/org/freedesktop/portal/desktop"
	chooserIfc  = "org.freedesktop.portal.FileChooser"
	responseSig = "org.freedesktop.portal.Request.Response"
	ownerSig    = "org.freedesktop.DBus.NameOwnerChanged"
)

// responseTimeout bounds how long a dialog may stay open.
var responseTimeout = 30 * time.Minute

var errPortalGone = errors.New("portal exited before answering")

// OpenFile asks for an existing image, starting in dir.
func (p *Portal) OpenFile(dir string) (string, error) {
	return p.call("OpenFile", "Open Image", openOptions(dir, p.Filters))
}

// SaveFile asks for a destination, starting in dir with name suggested.
func (p *Portal) SaveFile(dir, name string) (string, error) {
	return p.call("SaveFile", "Save Image", saveOptions(dir, name, p.Filters))
}

func (p *Portal) call(method, title string, opts map[string]dbus.Variant) (string, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return "", fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "dbus close: %v\n", cerr)
		}
	}()

	// Subscribe before the call so a fast response is not missed.
	rules := []string{
		"type='signal',interface='org.freedesktop.portal.Request',member='Response'",
		"type='signal',interface='org.freedesktop.DBus',member='NameOwnerChanged',arg0='" + portalDest + "'",
	}
	for _, rule := range rules {
		if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
			return "", fmt.Errorf("portal %s subscribe: %w", method, err)
		}
		defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)
	}
	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	obj := conn.Object(portalDest, portalPath)
	var handle dbus.ObjectPath
	call := obj.Call(chooserIfc+"."+method, 0, p.Parent, title, opts)
	if call.Err != nil {
		return "", fmt.Errorf("portal %s call: %w", method, call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return "", fmt.Errorf("portal %s response: %w", method, err)
	}

	path, err := awaitResponse(sigc, handle, time.After(responseTimeout))
	if err != nil {
		return "", fmt.Errorf("portal %s: %w", method, err)
	}
	return path, nil
}

// awaitResponse waits for the Response signal on handle. It fails when the
// portal leaves the bus, the connection closes or timeout fires.
func awaitResponse(sigc <-chan *dbus.Signal, handle dbus.ObjectPath, timeout <-chan time.Time) (string, error) {
	for {
		select {
		case sig, ok := <-sigc:
			if !ok {
				return "", errors.New("connection closed")
			}
			switch {
			case sig.Path == handle && sig.Name == responseSig:
				return parseResponse(sig.Body)
			case sig.Name == ownerSig && portalVanished(sig.Body):
				return "", errPortalGone
			}
		case <-timeout:
			return "", errors.New("timed out waiting for response")
		}
	}
}

// portalVanished reports whether a NameOwnerChanged body says the portal
// lost its owner.
func portalVanished(body []interface{}) bool {
	if len(body) < 3 {
		return false
	}
	name, _ := body[0].(string)
	owner, _ := body[2].(string)
	return name == portalDest && owner == ""
}
