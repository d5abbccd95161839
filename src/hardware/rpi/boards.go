package rpi

import (
	"errors"
	"fmt"
)

// Profile is everything the bring-up code needs to know about a board model.
// Exactly one is chosen per firmware build.
type Profile struct {
	Name string
	//MMIO base as seen by the ARM cores
	Base uint32
	//firmware has to be asked to set the UART clock before the baud divisors mean anything
	RequiresClockNegotiation bool
}

var (
	Raspi1 = Profile{Name: "raspi1", Base: 0x20000000}
	Raspi2 = Profile{Name: "raspi2", Base: 0x3F000000}
	Raspi3 = Profile{Name: "raspi3", Base: 0x3F000000, RequiresClockNegotiation: true}
	Raspi4 = Profile{Name: "raspi4", Base: 0xFE000000, RequiresClockNegotiation: true}
	Raspi5 = Profile{Name: "raspi5", Base: 0x7C000000, RequiresClockNegotiation: true}
)

var ErrUnknownBoard = errors.New("unknown board")

func Profiles() []Profile {
	return []Profile{Raspi1, Raspi2, Raspi3, Raspi4, Raspi5}
}

// Lookup finds a profile by name. The zero (BCM2835) shares its SoC, and so
// its profile, with the 1.
func Lookup(name string) (Profile, error) {
	if name == "raspi0" {
		return Raspi1, nil
	}
	for _, p := range Profiles() {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownBoard, name)
}

func (p Profile) String() string {
	return fmt.Sprintf("%s(base=0x%08x,clock=%v)", p.Name, p.Base, p.RequiresClockNegotiation)
}
