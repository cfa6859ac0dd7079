package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"podforge/internal/services"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Error:", services.Detail(err))
		os.Exit(1)
	}
}
