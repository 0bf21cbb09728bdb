package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/envault/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Println(err)
		os.Exit(1)
	}
}
