// Package seedsync keeps the project directories on a NAS share in step with
// the project table of the AIMS database.
//
// For a given year, every project row yields a directory name
// (phase number and project name, normalized). Directories that are expected
// but absent from the root are created, and each is filled with a copy of a
// seed directory. Directories that exist but are not expected are left alone.
//
// Example usage:
//
//	resolver, err := database.Open(ctx, dbConfig)
//	if err != nil {
//	    return err
//	}
//	defer resolver.Close()
//
//	s, err := seedsync.New(
//	    seedsync.WithSource(resolver),
//	    seedsync.WithRootDir("/nas/projects/2024"),
//	    seedsync.WithSeedDir("/nas/templates/project"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	s.OnDirectoryCreated(func(path string) {
//	    log.Printf("created %s", path)
//	})
//
//	result, err := s.Sync(ctx, sync.WithYear(2024), sync.WithMinStatus(projects.StatusApproved))
//	if errors.IsPartialFailure(err) {
//	    // some directories were created, see result.Failed
//	}
package seedsync
