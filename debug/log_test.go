package debug

import (
	"os"
	"testing"
)

func TestSwitchesDefaultOff(t *testing.T) {
	t.Setenv("OBJMAP_DEBUG_DECODE", "true")
	saved := d
	defer func() { d = saved }()
	d = &debug{}
	if err := decodeSwitches(d); err != nil {
		t.Fatal(err)
	}
	if !Decode() {
		t.Error("Decode() = false with OBJMAP_DEBUG_DECODE=true")
	}
	if Encode() || Registry() || Coerce() {
		t.Error("unset switches should be off")
	}
}

func TestSwitchesUnset(t *testing.T) {
	for _, k := range []string{"OBJMAP_DEBUG_DECODE", "OBJMAP_DEBUG_ENCODE", "OBJMAP_DEBUG_REGISTRY", "OBJMAP_DEBUG_COERCE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dd := &debug{}
	if err := decodeSwitches(dd); err != nil {
		t.Errorf("no switches set: error = %v", err)
	}
	if dd.Decode || dd.Encode || dd.Registry || dd.Coerce {
		t.Errorf("switches = %+v, want all off", *dd)
	}
}

func TestSwitchesBadValue(t *testing.T) {
	t.Setenv("OBJMAP_DEBUG_DECODE", "yes")
	if err := decodeSwitches(&debug{}); err == nil {
		t.Error("OBJMAP_DEBUG_DECODE=yes: expected error")
	}
}
