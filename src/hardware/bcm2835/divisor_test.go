package bcm2835

import "testing"

func TestDivisors(t *testing.T) {
	checkDivisors(t, 3000000, 115200, 1, 40)
	checkDivisors(t, 48000000, 115200, 26, 3)
	checkDivisors(t, 4000000, 115200, 2, 11)
	checkDivisors(t, 3000000, 9600, 19, 34)
}

func checkDivisors(t *testing.T, clock, baud, ibrd, fbrd uint32) {
	t.Helper()
	i, f := Divisors(clock, baud)
	if i != ibrd || f != fbrd {
		t.Errorf("%d Hz at %d baud: expected %d/%d but got %d/%d", clock, baud, ibrd, fbrd, i, f)
	}
}

func TestValidDivisor(t *testing.T) {
	if ibrd, _ := Divisors(1000000, 115200); ValidDivisor(ibrd) {
		t.Errorf("1 MHz gives ibrd %d, should not be usable at 115200", ibrd)
	}
	if ibrd, _ := Divisors(ReferenceClockHz, BaudRate); !ValidDivisor(ibrd) {
		t.Errorf("reference clock divisor %d rejected", ibrd)
	}
	if ValidDivisor(0x10000) {
		t.Errorf("0x10000 does not fit UARTIBRD")
	}
}
