// Package pressure classifies the kernel memory-pressure signal into a small
// ordered set of severity levels.
package pressure

// Level is the classified severity of the raw kernel pressure value, ordered
// from least to most severe.
type Level int

const (
	Normal Level = iota
	Warning
	Critical
)

// Raw values reported by the kernel pressure counter.
const (
	rawNormal   = 1
	rawWarning  = 2
	rawCritical = 4
)

var levelText = map[Level]string{
	Normal:   "normal",
	Warning:  "warning",
	Critical: "critical",
}

func (l Level) String() string {
	if s, ok := levelText[l]; ok {
		return s
	}
	return "normal"
}

// Classify maps a raw kernel pressure value to a Level. Anything outside the
// documented values, including 0 from a failed read and the rarely seen 3,
// falls back to Normal so a misread never raises a false alarm.
func Classify(raw int32) Level {
	switch raw {
	case rawWarning:
		return Warning
	case rawCritical:
		return Critical
	default:
		return Normal
	}
}
