//go:build tinygo && raspi4

package main

import "hellokernel/src/hardware/rpi"

var board = rpi.Raspi4
