package initializers

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.SetFormatter(&logrus.JSONFormatter{})
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetOutput(os.Stdout)
}

func LogError(module string, context string, err error) {
	Logger.WithFields(logrus.Fields{
		"module":  module,
		"context": context,
	}).Error(err.Error())
}
