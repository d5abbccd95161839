//go:build tinygo && !raspi0 && !raspi1 && !raspi2 && !raspi3 && !raspi4 && !raspi5

package main

import "hellokernel/src/hardware/rpi"

// No board tag was given.  This refuses to compile on purpose: pick exactly
// one of raspi0, raspi1, raspi2, raspi3, raspi4 or raspi5.
var board rpi.Profile = exactlyOneRaspiBuildTagIsRequired
