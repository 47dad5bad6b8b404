package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fbngrm/de-anki/pkg/anki"
)

// Lists the fronts of due and new cards in a deck, so a review session can
// be prepared with questions about the words that are up next.

var deckname string
var connectURL string
var limit int

func main() {
	flag.StringVar(&deckname, "d", "Default", "anki deck name")
	flag.StringVar(&connectURL, "u", anki.DefaultConnectURL, "AnkiConnect URL")
	flag.IntVar(&limit, "l", 100, "max cards per listing")
	flag.Parse()

	client := anki.NewConnectClient(connectURL)

	due, err := fetchFronts(client, fmt.Sprintf("deck:%q is:due", deckname))
	if err != nil {
		fmt.Printf("could not fetch due cards: %v\n", err)
		os.Exit(1)
	}
	fresh, err := fetchFronts(client, fmt.Sprintf("deck:%q is:new", deckname))
	if err != nil {
		fmt.Printf("could not fetch new cards: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("due (%d):\n", len(due))
	for _, front := range due {
		fmt.Println(front)
	}
	fmt.Printf("\nnew (%d):\n", len(fresh))
	for _, front := range fresh {
		fmt.Println(front)
	}
}

func fetchFronts(client *anki.ConnectClient, query string) ([]string, error) {
	ids, err := client.FindCards(query)
	if err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	var fronts []string
	for i := 0; i < len(ids); i += 100 {
		end := i + 100
		if end > len(ids) {
			end = len(ids)
		}
		cards, err := client.CardsInfo(ids[i:end])
		if err != nil {
			return nil, err
		}
		for _, card := range cards {
			if front := card.Fields["Front"].Value; front != "" {
				fronts = append(fronts, front)
			}
		}
	}
	return fronts, nil
}
