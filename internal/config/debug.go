package config

import "os"

func IsDebug() bool {
	return os.Getenv("SKYCAST_DEBUG") == "1"
}
