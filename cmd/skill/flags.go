package main

import (
	"flag"

	"github.com/wurt83ow/video-skill/internal/config"
)

// cfg хранит настройки, полученные из флагов и переменных окружения
var cfg = config.Default()

// parseFlags обрабатывает аргументы командной строки,
// затем переменные окружения переопределяют их непустыми значениями
func parseFlags() error {
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	return cfg.ApplyEnv()
}
