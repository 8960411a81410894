package main

import (
	"github.com/kfsoftware/hlf-gateway-manager/cmd"
	"github.com/kfsoftware/hlf-gateway-manager/log"
)

func main() {
	rootCMD := cmd.NewRootCMD()
	err := rootCMD.Execute()
	if err != nil {
		log.Fatalf("%v", err)
	}
}
