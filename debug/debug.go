package debug

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
)

type debug struct {
	Decode   bool `env:"OBJMAP_DEBUG_DECODE"`
	Encode   bool `env:"OBJMAP_DEBUG_ENCODE"`
	Registry bool `env:"OBJMAP_DEBUG_REGISTRY"`
	Coerce   bool `env:"OBJMAP_DEBUG_COERCE"`
}

var d *debug

func init() {
	d = &debug{}
	if err := decodeSwitches(d); err != nil {
		fmt.Fprintf(os.Stderr, "objmap debug: %v\n", err)
	}
}

// decodeSwitches reads the switches from the environment. Having none
// set is not an error.
func decodeSwitches(dd *debug) error {
	err := envdecode.Decode(dd)
	if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil
	}
	return err
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Registry() bool {
	return d.Registry
}
func Coerce() bool {
	return d.Coerce
}
