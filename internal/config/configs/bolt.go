package configs

// Bolt configures the BoltDB file backing the frequency-cap store.
type Bolt struct {
	// Path is the database file location. The file is created on first
	// open.
	Path string `env:"PATH" envDefault:"notices.db"`
}
