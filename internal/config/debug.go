package config

import "os"

func IsDebug() bool {
	return os.Getenv("PATHBOT_DEBUG") == "1"
}
