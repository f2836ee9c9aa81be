package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/targetlines/internal/placeholders"
)

func main() {
	dir := flag.String("out", "assets/textures", "directory to write the textures to")
	flag.Parse()

	fmt.Println("Target Line Texture Generator")
	fmt.Println("=============================")
	fmt.Println()

	written, err := placeholders.GenerateAndSave(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}

	fmt.Println()
	fmt.Printf("Done! Pass -textures %s to targetlines to use them.\n", *dir)
}
