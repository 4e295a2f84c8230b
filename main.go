package main

import (
	"fmt"
	"os"

	"github.com/netrunnerdb/cardlint/cmd"
	"github.com/netrunnerdb/cardlint/internal/validator"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if validator.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
