package session

// State is the phase of the trading day/week the market is in.
type State int

const (
	Overnight State = iota
	PreMarket
	RegularMarket
	AfterMarket
	Closed
)

// String returns the canonical state name.
func (s State) String() string {
	switch s {
	case Overnight:
		return "Overnight"
	case PreMarket:
		return "PreMarket"
	case RegularMarket:
		return "RegularMarket"
	case AfterMarket:
		return "AfterMarket"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Label returns the display label used on the wire. States other than
// Overnight are shown localized, matching the web frontend.
func (s State) Label() string {
	switch s {
	case Overnight:
		return "Overnight"
	case PreMarket:
		return "盘前"
	case RegularMarket:
		return "盘中"
	case AfterMarket:
		return "盘后"
	case Closed:
		return "休市"
	default:
		return "Unknown"
	}
}
