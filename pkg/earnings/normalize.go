package earnings

import "strings"

// callWindowTable maps upstream call-timing phrases to canonical codes.
// The Nasdaq feed and Yahoo table use this vocabulary; the spreadsheet
// export layer carries its own, differently-worded table.
var callWindowTable = map[string]string{
	"BEFORE MARKET OPEN":  SessionBMO,
	"PRE-MARKET":          SessionBMO,
	"PREMARKET":           SessionBMO,
	"TIME-PRE-MARKET":     SessionBMO,
	"AFTER MARKET CLOSE":  SessionAMC,
	"POST-MARKET":         SessionAMC,
	"POST MARKET":         SessionAMC,
	"TIME-AFTER-HOURS":    SessionAMC,
	"TIME-NOT-SUPPLIED":   SessionTBD,
	"TIME NOT SUPPLIED":   SessionTBD,
	"TBA":                 SessionTBD,
	"TBD":                 SessionTBD,
	"DURING MARKET HOURS": SessionDMH,
}

// NormalizeCallWindow maps a free-text call-timing label to BMO, AMC,
// DMH or TBD. An empty label is TBD. Labels outside the known
// vocabulary are returned uppercased unchanged; upstream wording is not
// fully enumerable, so an unknown phrase is data, not an error.
func NormalizeCallWindow(label string) string {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	if normalized == "" {
		return SessionTBD
	}
	if code, ok := callWindowTable[normalized]; ok {
		return code
	}
	return normalized
}
