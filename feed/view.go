// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package feed

import "github.com/danielhkuo/quickly-gallery/models"

// Card is one rendered slot in the feed: a loaded entry or a skeleton
// placeholder shown while a page is loading.
type Card struct {
	Entry    models.Entry
	Skeleton bool
	Voted    bool
}

// Cards derives the rendered list from a snapshot. While loading, pageSize
// skeletons follow the loaded entries. voted may be nil.
func Cards(s Snapshot, pageSize int, voted func(id int64) bool) []Card {
	n := len(s.Entries)
	if s.Loading {
		n += pageSize
	}
	cards := make([]Card, 0, n)
	for _, e := range s.Entries {
		c := Card{Entry: e}
		if voted != nil {
			c.Voted = voted(e.ID)
		}
		cards = append(cards, c)
	}
	if s.Loading {
		for i := 0; i < pageSize; i++ {
			cards = append(cards, Card{Skeleton: true})
		}
	}
	return cards
}
