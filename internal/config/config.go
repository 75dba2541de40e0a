package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	UI       UI     `yaml:"ui"`
}

type UI struct {
	MoveOrder string `yaml:"move-order" env:"MOVE_ORDER" env-default:"ascending"`
	Inline    bool   `yaml:"inline" env:"INLINE"`
}

// MustLoad - load all configurations in config.yml file, falls back to environment only when
// the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if _, err = config.UI.InitialOrder(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *UI) InitialOrder() (entity.Order, error) {
	order, err := entity.ParseOrder(that.MoveOrder)
	if err != nil {
		return entity.OrderAscending, fmt.Errorf("ui.move-order: %w", err)
	}

	return order, nil
}
