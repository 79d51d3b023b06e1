// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import (
	"fmt"
	"math"
	"testing"
)

func TestAeq(t *testing.T) {
	zero, almostZero, farFromZero := 0.0, 0.000001, -0.0001
	if !Aeq(zero, almostZero) {
		t.Error("values within Epsilon should compare equal")
	}
	if Aeq(zero, farFromZero) {
		t.Error("values outside Epsilon should not compare equal")
	}
}

func TestAeqZ(t *testing.T) {
	nearZero, negNearZero, notZero := 0.0000001, -0.0000001, -0.0001
	if !AeqZ(nearZero) || !AeqZ(negNearZero) {
		t.Error("value within Epsilon of zero should count as zero")
	}
	if AeqZ(notZero) {
		t.Error("value outside Epsilon of zero should not count as zero")
	}
}

func TestLerp(t *testing.T) {
	if !Aeq(Lerp(10, 5, 0.5), 7.5) {
		t.Error("Lerp midpoint should average the two inputs")
	}
}

// TestAtan2F checks the branch-light approximation tracks math.Atan2
// closely enough for direction-vector use.
func TestAtan2F(t *testing.T) {
	if !Aeq(math.Atan2(1, 0), Atan2F(1, 0)) || !Aeq(math.Atan2(-1, 0), Atan2F(-1, 0)) {
		t.Error("Atan2F diverges from math.Atan2")
	}
}

func TestNang(t *testing.T) {
	over450, neg450 := 7.853981, -7.853981
	want90, wantNeg90 := 1.570796, -1.570796
	if !Aeq(Nang(over450), want90) || !Aeq(Nang(neg450), wantNeg90) {
		t.Error("Nang failed to wrap into [-Pi, Pi]")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(20, -30, -15) != -15 || Clamp(20, 30, 60) != 30 || Clamp(20, 10, 50) != 20 {
		t.Error("Clamp did not restrict to bounds")
	}
}

func TestRadDeg(t *testing.T) {
	if Deg(Rad(90)) != 90 {
		t.Error("round trip through Rad/Deg should be lossless")
	}
}

func TestRound(t *testing.T) {
	roundedDown, roundedUp := Round(1.48, 0), Round(1.51, 0)
	if roundedDown != 1.0 || roundedUp != 2.0 {
		t.Error("failed to round to nearest integer", roundedDown, roundedUp)
	}
	negHalf, posHalf := Round(-0.49, 0), Round(0.49, 0)
	if negHalf != 0.0 || posHalf != 0.0 {
		t.Error("failed to round small magnitudes toward zero", negHalf, posHalf)
	}
}

// BenchmarkAtan2 and BenchmarkAtan2F compare the stdlib trig call against
// the table-free approximation Atan2F.
func BenchmarkAtan2(b *testing.B) {
	for cnt := 0; cnt < b.N; cnt++ {
		math.Atan2(1, 1)
	}
}
func BenchmarkAtan2F(b *testing.B) {
	for cnt := 0; cnt < b.N; cnt++ {
		Atan2F(1, 1)
	}
}

// Shared test helpers for the other files in this package.

const format = "\ngot\n%s\nwanted\n%s"

func (m *M3) Dump() string {
	row := "[%+2.9f, %+2.9f, %+2.9f]\n"
	return fmt.Sprintf(row, m.Xx, m.Xy, m.Xz) +
		fmt.Sprintf(row, m.Yx, m.Yy, m.Yz) +
		fmt.Sprintf(row, m.Zx, m.Zy, m.Zz)
}

func (m *M4) Dump() string {
	row := "[%+2.9f, %+2.9f, %+2.9f, %+2.9f]\n"
	return fmt.Sprintf(row, m.Xx, m.Xy, m.Xz, m.Xw) +
		fmt.Sprintf(row, m.Yx, m.Yy, m.Yz, m.Yw) +
		fmt.Sprintf(row, m.Zx, m.Zy, m.Zz, m.Zw) +
		fmt.Sprintf(row, m.Wx, m.Wy, m.Wz, m.Ww)
}

func (v *V3) Dump() string { return fmt.Sprintf("%2.9f", *v) }
func (v *V4) Dump() string { return fmt.Sprintf("%2.9f", *v) }
func (q *Q) Dump() string  { return fmt.Sprintf("%2.9f", *q) }
