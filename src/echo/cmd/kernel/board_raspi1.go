//go:build tinygo && (raspi0 || raspi1)

package main

import "hellokernel/src/hardware/rpi"

var board = rpi.Raspi1
