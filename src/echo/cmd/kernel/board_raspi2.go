//go:build tinygo && raspi2

package main

import "hellokernel/src/hardware/rpi"

var board = rpi.Raspi2
