package utils

import (
	"io"

	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// CloseLogged closes c and logs the outcome under name.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
		return
	}
	log.Debug("closed", logger.String("resource", name))
}
