/*
	svgico converts a directory of SVG icons into multi-resolution ICO files,
	swapping the placeholder fill color for one chosen at startup.
*/

package main

import "github.com/hoppxi/svgico/internal/cmd"

func main() {
	cmd.Execute()
}
