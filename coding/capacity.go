// Copyright 2025 The qrusty Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "fmt"

// dataBits lists the number of data bits that can be stored in a code
// of each version at each level.  Rows 0 to 39 hold QR versions 1 to
// 40, rows 40 to 43 Micro QR versions M1 to M4.  Zero marks a level
// unavailable at that version.
var dataBits = [M4][H + 1]int{
	// QR versions
	{152, 128, 104, 72},
	{272, 224, 176, 128},
	{440, 352, 272, 208},
	{640, 512, 384, 288},
	{864, 688, 496, 368},
	{1088, 864, 608, 480},
	{1248, 992, 704, 528},
	{1552, 1232, 880, 688},
	{1856, 1456, 1056, 800},
	{2192, 1728, 1232, 976}, // 10
	{2592, 2032, 1440, 1120},
	{2960, 2320, 1648, 1264},
	{3424, 2672, 1952, 1440},
	{3688, 2920, 2088, 1576},
	{4184, 3320, 2360, 1784},
	{4712, 3624, 2600, 2024},
	{5176, 4056, 2936, 2264},
	{5768, 4504, 3176, 2504},
	{6360, 5016, 3560, 2728},
	{6888, 5352, 3880, 3080}, // 20
	{7456, 5712, 4096, 3248},
	{8048, 6256, 4544, 3536},
	{8752, 6880, 4912, 3712},
	{9392, 7312, 5312, 4112},
	{10208, 8000, 5744, 4304},
	{10960, 8496, 6032, 4768},
	{11744, 9024, 6464, 5024},
	{12248, 9544, 6968, 5288},
	{13048, 10136, 7288, 5608},
	{13880, 10984, 7880, 5960}, // 30
	{14744, 11640, 8264, 6344},
	{15640, 12328, 8920, 6760},
	{16568, 13048, 9368, 7208},
	{17528, 13800, 9848, 7688},
	{18448, 14496, 10288, 7888},
	{19472, 15312, 10832, 8432},
	{20528, 15936, 11408, 8768},
	{21616, 16816, 12016, 9136},
	{22496, 17728, 12656, 9776},
	{23648, 18672, 13328, 10208}, // 40
	// Micro QR versions
	{20, 0, 0, 0},
	{40, 32, 0, 0},
	{84, 68, 0, 0},
	{128, 112, 80, 0},
}

func init() {
	if err := checkCapacity(&dataBits); err != nil {
		panic(err)
	}
}

// checkCapacity verifies that capacity never decreases with the QR
// version, as FindVersionIn depends on it.
func checkCapacity(t *[M4][H + 1]int) error {
	for l := L; l <= H; l++ {
		for v := MinVersion; v < MaxVersion; v++ {
			if t[v-1][l] > t[v][l] || t[v-1][l] <= 0 {
				return fmt.Errorf("qr: capacity table not monotonic "+
					"at version %d level %s", v, l)
			}
		}
	}
	return nil
}

// DataBits returns the number of data bits that can be stored in a
// code with the given version and level, or 0 if the combination is
// invalid.
func (v Version) DataBits(l Level) int {
	if !v.IsValid() || !l.IsValid() {
		return 0
	}
	return dataBits[v-1][l]
}

// DataBytes returns the number of data codewords for v and l.
// Micro QR versions M1 and M3 end with a 4 bit codeword, which is
// counted as a whole.
func (v Version) DataBytes(l Level) int {
	return (v.DataBits(l) + 7) >> 3
}
