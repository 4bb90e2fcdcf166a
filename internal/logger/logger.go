package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Newはアプリ共通のzerologロガーを返す。
// devではコンソール形式、それ以外はJSON
func New(goEnv string) zerolog.Logger {
	if goEnv == "dev" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
