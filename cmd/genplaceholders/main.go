package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/gloomdelve/internal/placeholders"
)

func main() {
	dir := flag.String("out", "data/atlases", "Directory to write dungeon.png and dungeon.json into")
	flag.Parse()

	fmt.Println("Gloomdelve Placeholder Tile Generator")
	fmt.Println("=====================================")
	fmt.Println()

	if err := placeholders.GenerateAndSave(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Done! Placeholder tiles are ready to use.")
}
