// Command parceriasctl opera las parcerias desde la terminal contra el mismo backend del painel.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultServices).Execute(); err != nil {
		os.Exit(1)
	}
}
