package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != DefaultAppName {
		t.Fatalf("appName = %q", o.appName())
	}
	if o.timeout() != 5*time.Second {
		t.Fatalf("timeout = %v", o.timeout())
	}
	o = Options{AppName: "Other", Timeout: time.Second}
	if o.appName() != "Other" || o.timeout() != time.Second {
		t.Fatalf("overrides ignored: %q %v", o.appName(), o.timeout())
	}
}
