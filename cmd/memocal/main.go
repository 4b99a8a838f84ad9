package main

import (
	"github.com/oliverisaac/goli"
	"github.com/sirupsen/logrus"
)

func init() {
	goli.InitLogrus(logrus.DebugLevel)
}

func main() {
	Execute()
}
