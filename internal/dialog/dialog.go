// Package dialog shows native open and save dialogs through the XDG desktop
// portal.
package dialog

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/godbus/dbus/v5"
)

// ErrCancelled is returned when the user dismisses a dialog.
var ErrCancelled = errors.New("dialog cancelled")

// ErrNoSelection is returned when the portal answers without a file.
var ErrNoSelection = errors.New("dialog returned no file")

// Filter is a named set of glob patterns.
type Filter struct {
	Name     string
	Patterns []string
}

// DefaultFilters lists PNG first, then every format the codec reads.
var DefaultFilters = []Filter{
	{Name: "PNG Files (*.png)", Patterns: []string{"*.png"}},
	{Name: "All images", Patterns: []string{"*.png", "*.jpg", "*.jpeg", "*.gif", "*.bmp", "*.tif", "*.tiff", "*.webp"}},
}

// Portal talks to org.freedesktop.portal.FileChooser.
type Portal struct {
	// Parent is the portal parent window identifier, usually empty.
	Parent  string
	Filters []Filter
}

// New returns a Portal with the default filters.
func New() *Portal {
	return &Portal{Filters: DefaultFilters}
}

var handleToken = func() string {
	return fmt.Sprintf("spriteedit-%d", time.Now().UnixNano())
}

// portalFilter mirrors the portal's (sa(us)) filter signature.
type portalFilter struct {
	Name     string
	Patterns []portalPattern
}

type portalPattern struct {
	Kind    uint32
	Pattern string
}

func encodeFilters(filters []Filter) []portalFilter {
	out := make([]portalFilter, 0, len(filters))
	for _, f := range filters {
		pf := portalFilter{Name: f.Name}
		for _, p := range f.Patterns {
			pf.Patterns = append(pf.Patterns, portalPattern{Kind: 0, Pattern: p})
		}
		out = append(out, pf)
	}
	return out
}

// nulBytes encodes a path the way the portal expects: bytes with a
// trailing NUL.
func nulBytes(s string) []byte {
	return append([]byte(s), 0)
}

func openOptions(dir string, filters []Filter) map[string]dbus.Variant {
	opts := map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(handleToken()),
		"modal":        dbus.MakeVariant(true),
		"multiple":     dbus.MakeVariant(false),
	}
	if len(filters) > 0 {
		enc := encodeFilters(filters)
		opts["filters"] = dbus.MakeVariant(enc)
		opts["current_filter"] = dbus.MakeVariant(enc[0])
	}
	if dir != "" {
		opts["current_folder"] = dbus.MakeVariant(nulBytes(dir))
	}
	return opts
}

func saveOptions(dir, name string, filters []Filter) map[string]dbus.Variant {
	opts := openOptions(dir, filters)
	delete(opts, "multiple")
	if name != "" {
		opts["current_name"] = dbus.MakeVariant(filepath.Base(name))
	}
	return opts
}

// Portal response codes.
const (
	responseSuccess   uint32 = 0
	responseCancelled uint32 = 1
)

// parseResponse extracts the chosen path from a Request.Response body.
func parseResponse(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("portal response: short body")
	}
	code, ok := body[0].(uint32)
	if !ok {
		return "", fmt.Errorf("portal response: code is %T", body[0])
	}
	switch code {
	case responseSuccess:
	case responseCancelled:
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("portal response: code %d", code)
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal response: results are %T", body[1])
	}
	v, ok := results["uris"]
	if !ok {
		return "", ErrNoSelection
	}
	uris, ok := v.Value().([]string)
	if !ok || len(uris) == 0 {
		return "", ErrNoSelection
	}
	return uriToPath(uris[0])
}

func uriToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("portal uri %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("portal uri %q: unsupported scheme", uri)
	}
	return u.Path, nil
}
