package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/store"
)

// LoadManifests fetches every rover's manifest concurrently into st. A rover
// is marked loaded only after its manifest is stored. The first fetch error
// is returned; rovers that loaded keep their state.
func LoadManifests(ctx context.Context, fetcher ManifestFetcher, st *store.Store) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, r := range rovers.All() {
		loaded, err := st.ManifestLoaded(r)
		if err != nil {
			return err
		}
		if loaded {
			continue
		}

		g.Go(func() error {
			m, err := fetcher.FetchManifest(ctx, r)
			if err != nil {
				log.Printf("Failed to load %s manifest: %v", r, err)
				return err
			}
			if err := st.SetManifest(r, m); err != nil {
				return fmt.Errorf("store %s manifest: %w", r, err)
			}
			return st.SetManifestLoaded(r, true)
		})
	}

	return g.Wait()
}
