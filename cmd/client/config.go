package main

// Config defines the client-side environment variables. Positional
// arguments take precedence; the interactive prompt is the fallback when
// neither is supplied.
type Config struct {
	ServerAddress string `env:"CHAT_SERVER_ADDR"`
	Username      string `env:"CHAT_USERNAME"`
	LogLevel      string `env:"LOG_LEVEL,default=info"`
}

// identity is the fully resolved client identity, validated once before
// the prompt loop starts.
type identity struct {
	Server   string `validate:"required,hostname_port"`
	Username string `validate:"required"`
}
