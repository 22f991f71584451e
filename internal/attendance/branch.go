package attendance

import "strings"

// ParseBranchShifts parses the BRANCH_SHIFTS env value into a branch→shift
// map. Formato: "Centro:mañana,Norte:tarde". Las sucursales listadas tienen
// un único turno habilitado; para el resto el empleado elige.
func ParseBranchShifts(raw string) map[string]Shift {
	out := make(map[string]Shift)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		branch := strings.TrimSpace(parts[0])
		shift, err := ParseShift(parts[1])
		if branch == "" || err != nil {
			continue
		}
		out[branch] = shift
	}
	return out
}

// ForcedShift returns the preset shift for a branch, if it has one.
func ForcedShift(branchShifts map[string]Shift, branch string) (Shift, bool) {
	s, ok := branchShifts[strings.TrimSpace(branch)]
	return s, ok
}
