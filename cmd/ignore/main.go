package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fbngrm/de-anki/pkg/ignore"
)

// Maintains the list of headwords for which note proposals are never shown.

var ignorePath string

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Printf("could not get working dir: %v\n", err)
		os.Exit(1)
	}
	flag.StringVar(&ignorePath, "f", filepath.Join(cwd, "data", "ignore"), "ignore file path")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	ignored, err := ignore.Load(ignorePath)
	if err != nil {
		fmt.Printf("could not load ignore file: %v\n", err)
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		words := make([]string, 0, len(ignored))
		for word := range ignored {
			words = append(words, word)
		}
		sort.Strings(words)
		for _, word := range words {
			fmt.Println(word)
		}
		return
	case "add":
		if len(args) < 2 {
			usage()
		}
		for _, word := range args[1:] {
			ignored.Update(word)
		}
	case "rm":
		if len(args) < 2 {
			usage()
		}
		for _, word := range args[1:] {
			if !ignored.Contains(word) {
				fmt.Printf("%s is not ignored\n", word)
				continue
			}
			delete(ignored, word)
		}
	default:
		usage()
	}

	if err := ignored.Write(ignorePath); err != nil {
		fmt.Printf("could not write ignore file: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: ignore [-f file] list | add <word>... | rm <word>...")
	os.Exit(1)
}
