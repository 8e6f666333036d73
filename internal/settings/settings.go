package settings

// Environment names offered on the settings screen.
const (
	EnvProd    = "Prod"
	EnvPreProd = "Pre-Prod"
	EnvQA      = "QA"
)

// Experience modes for the embedded checkout.
const (
	ExperienceNative  = "Native"
	ExperienceWebview = "Webview"
)

// Default environment base URLs.
const (
	DefaultQAURL      = "https://qa1api.nimbbl.tech/"
	DefaultPreProdURL = "https://apipp.nimbbl.tech/"
	DefaultProdURL    = "https://api.nimbbl.tech/"
)

// Settings is the persisted configuration consumed read-only by the
// request-mapping environment.
type Settings struct {
	Environment string `json:"environment"`
	QAURL       string `json:"qa_url"`
	PreProdURL  string `json:"pre_prod_url"`
	ProdURL     string `json:"prod_url"`
	Experience  string `json:"experience"`
}

// Default returns the out-of-the-box settings: production environment,
// webview experience.
func Default() Settings {
	return Settings{
		Environment: EnvProd,
		QAURL:       DefaultQAURL,
		PreProdURL:  DefaultPreProdURL,
		ProdURL:     DefaultProdURL,
		Experience:  ExperienceWebview,
	}
}

// BaseURL resolves the API base URL for the active environment.
func (s Settings) BaseURL() string {
	switch s.Environment {
	case EnvQA:
		return s.QAURL
	case EnvPreProd:
		return s.PreProdURL
	default:
		return s.ProdURL
	}
}

// withDefaults fills any empty field from the defaults, so a partial or
// older settings file still resolves.
func (s Settings) withDefaults() Settings {
	def := Default()
	if s.Environment == "" {
		s.Environment = def.Environment
	}
	if s.QAURL == "" {
		s.QAURL = def.QAURL
	}
	if s.PreProdURL == "" {
		s.PreProdURL = def.PreProdURL
	}
	if s.ProdURL == "" {
		s.ProdURL = def.ProdURL
	}
	if s.Experience == "" {
		s.Experience = def.Experience
	}
	return s
}
