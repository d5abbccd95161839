//go:build tinygo && raspi3

package main

import "hellokernel/src/hardware/rpi"

var board = rpi.Raspi3
