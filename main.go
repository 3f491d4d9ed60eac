// devinsight builds analytics reports for GitHub developer profiles.
//
// Usage:
//
//	devinsight report octocat
//	devinsight report octocat --format table
//	devinsight serve --port 5000
package main

import (
	"github.com/naka-gawa/devinsight/cmd"
)

func main() {
	cmd.Execute()
}
