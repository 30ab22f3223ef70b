package main

// Regenerates the built-in world map asset in ascii/earth.go from an
// equirectangular projection image: dark pixels become '#' land, light
// pixels ocean. Usage: mapconvert [image] [cols] [rows]

import (
	"fmt"
	"os"
	"strconv"

	"github.com/f13rce/mapip/ascii"
)

func main() {
	path := "map.png"
	cols, rows := 120, 60
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if len(os.Args) > 3 {
		var err error
		if cols, err = strconv.Atoi(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "bad column count %q\n", os.Args[2])
			os.Exit(1)
		}
		if rows, err = strconv.Atoi(os.Args[3]); err != nil {
			fmt.Fprintf(os.Stderr, "bad row count %q\n", os.Args[3])
			os.Exit(1)
		}
	}

	bitmap, err := ascii.LoadBitmap(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scaleX := float64(bitmap.W) / float64(cols)
	scaleY := float64(bitmap.H) / float64(rows)

	fmt.Println("var earthRows = []string{")
	for y := 0; y < rows; y++ {
		fmt.Print("\t\"")
		for x := 0; x < cols; x++ {
			// Nearest-neighbor is enough for a two-level asset.
			if bitmap.At(int(float64(x)*scaleX), int(float64(y)*scaleY)) > 128 {
				fmt.Print(" ")
			} else {
				fmt.Print("#")
			}
		}
		fmt.Println("\",")
	}
	fmt.Println("}")
}
