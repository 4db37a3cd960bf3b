package main

import (
	"log"

	"fundflow/cmd"
)

func main() {
	defer shutdownHook()
	cmd.Execute()
}

func shutdownHook() {
	if r := recover(); r != nil {
		if er, hasError := r.(error); hasError {
			log.Printf("caught error:%+v", er)
		}
	}
}
