package config

// BoardConfig is the root config for board.json
type BoardConfig struct {
	Display DisplayConfig `json:"display"`
	Timing  TimingConfig  `json:"timing"`
	Store   StoreConfig   `json:"store"`
	PubSub  PubSubConfig  `json:"pubsub"`
	Log     LogConfig     `json:"log"`
	Team    TeamConfig    `json:"team"`
}

type DisplayConfig struct {
	Scale     int `json:"scale"`
	Framerate int `json:"framerate"`
}

// TimingConfig sets playback pacing in milliseconds. Zero keeps the default.
type TimingConfig struct {
	DrawStartMs  int `json:"drawStartMs"`
	DrawMoveMs   int `json:"drawMoveMs"`
	DrawEndMs    int `json:"drawEndMs"`
	PlayerMoveMs int `json:"playerMoveMs"`
	EraseMs      int `json:"eraseMs"`
	ClearMs      int `json:"clearMs"`
	DragStepMs   int `json:"dragStepMs"`
	SkipMs       int `json:"skipMs"`
}

// StoreConfig selects the play store: memory, sqlite or postgres
type StoreConfig struct {
	Driver      string `json:"driver"`
	SQLiteFile  string `json:"sqliteFile"`
	DatabaseURL string `json:"databaseURL"`
}

// PubSubConfig enables the NATS upstream when NATSURL is set
type PubSubConfig struct {
	NATSURL string `json:"natsURL"`
	Subject string `json:"subject"`
}

type LogConfig struct {
	File    string `json:"file"`
	Level   string `json:"level"`
	Console bool   `json:"console"`
}

// TeamConfig identifies whose plays the board shows
type TeamConfig struct {
	ID    string `json:"id"`
	Sport string `json:"sport"`
	User  string `json:"user"`
}
