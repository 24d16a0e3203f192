// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/eclasspath/eclasspath/cmd/eclasspath"

func main() {
	cmd.Execute()
}
