package ntru

// newPreset derives q and the norm bounds from the table columns.
func newPreset(name string, oid [3]byte, nBits, qBits, n int, bs, bt int64, d1, d2, d3, paddedN int) ParameterSet {
	q := int64(1) << qBits
	return ParameterSet{
		Name:       name,
		OID:        oid,
		NBits:      nBits,
		QBits:      qBits,
		N:          n,
		P:          3,
		Q:          q,
		Bs:         bs,
		Bt:         bt,
		NormBoundS: q/2 - bs,
		NormBoundT: q/2 - bt,
		D1:         d1,
		D2:         d2,
		D3:         d3,
		PaddedN:    paddedN,
	}
}

// Standardized sets. The 20140508 family uses the larger moduli, the
// 20151024 family the reduced ones.
var presets = []ParameterSet{
	newPreset("xxx-20140508-401", [3]byte{0xff, 0xff, 0xff}, 9, 18, 401, 240, 80, 8, 8, 6, 416),
	newPreset("xxx-20140508-439", [3]byte{0xff, 0xff, 0xfe}, 9, 19, 439, 264, 88, 9, 8, 5, 448),
	newPreset("xxx-20140508-593", [3]byte{0xff, 0xff, 0xfd}, 10, 19, 593, 300, 100, 10, 10, 8, 608),
	newPreset("xxx-20140508-743", [3]byte{0xff, 0xff, 0xfc}, 10, 20, 743, 336, 112, 11, 11, 15, 768),
	newPreset("xxx-20151024-401", [3]byte{0xff, 0xff, 0xfb}, 9, 15, 401, 138, 46, 8, 8, 6, 416),
	newPreset("xxx-20151024-443", [3]byte{0xff, 0xff, 0xfa}, 9, 16, 443, 138, 46, 9, 8, 5, 448),
	newPreset("xxx-20151024-563", [3]byte{0xff, 0xff, 0xf9}, 10, 16, 563, 174, 58, 10, 9, 8, 592),
	newPreset("xxx-20151024-743", [3]byte{0xff, 0xff, 0xf7}, 10, 17, 743, 186, 62, 11, 11, 6, 752),
	newPreset("xxx-20151024-907", [3]byte{0xff, 0xff, 0xf6}, 10, 17, 907, 225, 75, 13, 12, 7, 912),
}

// Preset20140508_401 returns xxx-20140508-401 (q = 2^18).
func Preset20140508_401() ParameterSet { return presets[0] }

// Preset20140508_439 returns xxx-20140508-439 (q = 2^19).
func Preset20140508_439() ParameterSet { return presets[1] }

// Preset20140508_593 returns xxx-20140508-593 (q = 2^19).
func Preset20140508_593() ParameterSet { return presets[2] }

// Preset20140508_743 returns xxx-20140508-743 (q = 2^20).
func Preset20140508_743() ParameterSet { return presets[3] }

// Preset20151024_401 returns xxx-20151024-401 (q = 2^15).
func Preset20151024_401() ParameterSet { return presets[4] }

// Preset20151024_443 returns xxx-20151024-443 (q = 2^16).
func Preset20151024_443() ParameterSet { return presets[5] }

// Preset20151024_563 returns xxx-20151024-563 (q = 2^16).
func Preset20151024_563() ParameterSet { return presets[6] }

// Preset20151024_743 returns xxx-20151024-743 (q = 2^17).
func Preset20151024_743() ParameterSet { return presets[7] }

// Preset20151024_907 returns xxx-20151024-907 (q = 2^17).
func Preset20151024_907() ParameterSet { return presets[8] }
