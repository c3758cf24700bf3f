// Command popstats estimates population summary statistics and their
// bootstrap standard errors.
package main

import (
	"popstats/internal/app"
	"popstats/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
