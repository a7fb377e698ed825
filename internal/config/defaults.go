package config

// DefaultParticles are the leading particles stripped from displayed
// definitions in interlinear view.
var DefaultParticles = []string{"and ", "the ", "a ", "an ", "to ", "of "}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Data.LexiconSource == "" {
		cfg.Data.LexiconSource = "/usr/local/var/fidel/data/words.json"
	}
	if cfg.Data.VerseIndexSource == "" {
		cfg.Data.VerseIndexSource = "/usr/local/var/fidel/data/search_index.json"
	}
	if cfg.Data.ChapterCount == 0 {
		cfg.Data.ChapterCount = 36
	}
	if cfg.Data.ChapterExt == "" {
		cfg.Data.ChapterExt = "html"
	}
	if cfg.Search.MinQueryLength == 0 {
		cfg.Search.MinQueryLength = 2
	}
	if cfg.Search.WordMatchLimit == 0 {
		cfg.Search.WordMatchLimit = 50
	}
	if cfg.Search.VerseMatchLimit == 0 {
		cfg.Search.VerseMatchLimit = 30
	}
	if cfg.Search.DebounceMS == 0 {
		cfg.Search.DebounceMS = 200
	}
	if cfg.Search.Fuzziness == 0 {
		cfg.Search.Fuzziness = 2
	}
	if cfg.Search.MaxSuggestions == 0 {
		cfg.Search.MaxSuggestions = 5
	}
	if cfg.Display.DefinitionMaxLen == 0 {
		cfg.Display.DefinitionMaxLen = 25
	}
	if cfg.Display.Particles == nil {
		cfg.Display.Particles = DefaultParticles
	}
}
