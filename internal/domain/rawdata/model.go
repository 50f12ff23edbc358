package rawdata

// File is one scraped player log: season folder, team folder, player file.
type File struct {
	Season    string
	TeamLabel string
	PlayerKey string
	Path      string
}

// Row is one line of a player log exactly as scraped. Fields stay raw text.
type Row struct {
	Date           string
	Opponent       string
	Score          string
	Minutes        string
	Points         string
	Valuation      string
	TwoPoint       string
	ThreePoint     string
	FreeThrow      string
	OffRebounds    string
	DefRebounds    string
	Rebounds       string
	Assists        string
	Steals         string
	Blocks         string
	Turnovers      string
	PlusMinus      string
	FoulsCommitted string
	FoulsReceived  string
}
