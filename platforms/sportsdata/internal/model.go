package internal

type Player struct {
	PlayerID  int    `json:"PlayerID"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Team      string `json:"Team"`
	Position  string `json:"Position"`
}

type Timeframe struct {
	Season     *int `json:"Season"`
	Week       *int `json:"Week"`
	IsCurrent  bool `json:"IsCurrent"`
	IsUpcoming bool `json:"IsUpcoming"`
}

type ProjectionRow struct {
	PlayerID *int   `json:"PlayerID"`
	Name     string `json:"Name"`
	Team     string `json:"Team"`
	Position string `json:"Position"`

	PassingYards         float64 `json:"PassingYards"`
	PassingTouchdowns    float64 `json:"PassingTouchdowns"`
	PassingInterceptions float64 `json:"PassingInterceptions"`
	RushingYards         float64 `json:"RushingYards"`
	RushingTouchdowns    float64 `json:"RushingTouchdowns"`
	Receptions           float64 `json:"Receptions"`
	ReceivingYards       float64 `json:"ReceivingYards"`
	ReceivingTouchdowns  float64 `json:"ReceivingTouchdowns"`
	FumblesLost          float64 `json:"FumblesLost"`
}
