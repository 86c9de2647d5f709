package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/internal/maze/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := maze(); err != nil {
		logrus.Fatal(err)
	}
}

func maze() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
