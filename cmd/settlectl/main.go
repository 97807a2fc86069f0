// Command settlectl computes balances, netting and settlements offline from
// a YAML snapshot of inter-site material debts.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
