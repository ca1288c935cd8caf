package main

import "context"

// seedTextbooks catalogs the initial textbooks, reporting whether any
// were inserted.
func (cli *commandLine) seedTextbooks() error {
	seeded, err := cli.textbookSvc.Seed(context.Background())
	if err != nil {
		return err
	}
	if seeded {
		logger.Println("textbook catalog seeded")
	} else {
		logger.Println("textbook catalog already seeded")
	}
	return nil
}
