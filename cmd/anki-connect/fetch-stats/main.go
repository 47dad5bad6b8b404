package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fbngrm/de-anki/pkg/anki"
)

var deckname string
var connectURL string

func main() {
	flag.StringVar(&deckname, "d", "Default", "anki deck name")
	flag.StringVar(&connectURL, "u", anki.DefaultConnectURL, "AnkiConnect URL")
	flag.Parse()

	client := anki.NewConnectClient(connectURL)
	stats, err := client.GetDeckStats([]string{deckname})
	if err != nil {
		fmt.Printf("could not fetch deck stats: %v\n", err)
		os.Exit(1)
	}

	s, ok := stats[deckname]
	if !ok {
		fmt.Printf("no stats for deck %q\n", deckname)
		os.Exit(1)
	}
	fmt.Printf("deck: %s\n", s.Name)
	fmt.Printf("new: %d\n", s.NewCount)
	fmt.Printf("learning: %d\n", s.LearnCount)
	fmt.Printf("review: %d\n", s.ReviewCount)
	fmt.Printf("total: %d\n", s.TotalInDeck)
}
