package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	Port         string `env:"PORT" envDefault:"5000"`
	StoreDriver  string `env:"STORE_DRIVER" envDefault:"badger"`
	DataDir      string `env:"DATA_DIR" envDefault:"data"`
	UsersFile    string `env:"USERS_FILE" envDefault:"users.json"`
	MessagesFile string `env:"MESSAGES_FILE" envDefault:"posts.json"`
	BcryptCost   int    `env:"BCRYPT_COST" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
