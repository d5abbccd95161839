package bcm2835

// Divisors computes the PL011 baud rate divisor for clockHz: the integer
// part of clockHz/(16*baud) and the fraction in 64ths, rounded.
func Divisors(clockHz uint32, baud uint32) (ibrd uint32, fbrd uint32) {
	// clock/(16*baud)*64 == clock*4/baud
	scaled := (uint64(clockHz)*4 + uint64(baud)/2) / uint64(baud)
	return uint32(scaled >> 6), uint32(scaled & 0x3f)
}

// ValidDivisor reports whether ibrd fits the 16 bit UARTIBRD field.  Zero
// stops the baud generator.
func ValidDivisor(ibrd uint32) bool {
	return ibrd != 0 && ibrd <= 0xffff
}
