//go:build tinygo && raspi5

package main

import "hellokernel/src/hardware/rpi"

var board = rpi.Raspi5
