package model

// IDEVersion is GameMaker Studio's own versioning scheme, distinct from the
// bytecode version and from the effective Version the detector raises
// (spec §4.4).
type IDEVersion struct {
	Major, Minor, Release, Build int32
}

// Version is the effective engine version, either the GEN8-declared one or
// the one raised by the version detector (spec §4.4). Branch distinguishes
// e.g. "2024.6" from "2024.13 PostLTS".
type Version struct {
	Major, Minor, Release, Build int32
	Branch                       string
}

// Less reports whether v is strictly older than o, used by the monotonic
// version-detector property in spec §8.
func (v Version) Less(o Version) bool {
	a := [4]int32{v.Major, v.Minor, v.Release, v.Build}
	b := [4]int32{o.Major, o.Minor, o.Release, o.Build}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (v Version) String() string {
	s := ""
	for i, n := range [4]int32{v.Major, v.Minor, v.Release, v.Build} {
		if i > 0 {
			s += "."
		}
		s += itoa(n)
	}
	if v.Branch != "" {
		s += " " + v.Branch
	}
	return s
}

func itoa(n int32) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// InfoFlags is GEN8's bit-flag field (fullscreen, sync, interpolation
// pixels, etc.); bits are preserved verbatim, not individually named,
// since the decoder's job is round-tripping, not interpreting gameplay
// settings.
type InfoFlags uint32

// GeneralInfo is the GEN8 chunk (spec §3): identity, declared and (once
// run) effective version, the function-classification bitset, room
// order, and the GMS2+ UID block.
type GeneralInfo struct {
	DisableDebug bool
	FileName     StringRef
	Configuration StringRef
	LastObj, LastTile int32

	GameID   int32
	GameGUID [16]byte

	DefaultWindowSize [2]int32
	InfoFlags         InfoFlags

	License   StringRef
	Timestamp int64
	DisplayName StringRef

	ActiveTargets int64
	FunctionClassifications uint64 // bitset, spec §3

	SteamAppID int32
	DebuggerPort int32

	RoomOrder []RoomRef

	// GMS2+ only.
	HasGMS2UIDBlock bool
	UID1, UID2, UID3 int64

	BytecodeVersion uint8
	Declared        Version // as literally stored in GEN8
	Effective       Version // after the detector has (maybe) run; starts equal to Declared
	IDE             IDEVersion
}
