package main

import (
	"context"
	"log"
	"os"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/textbook"
	"github.com/sahyadri/classai/storage/database/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	ctx, cancel := context.WithTimeout(context.Background(), conf.Database.Timeout)
	defer cancel()

	db, err := mongodb.Open(ctx, conf.Database.URI, conf.Database.Name)
	errAndDie(err)
	defer db.Close(context.Background())
	errAndDie(db.EnsureIndexes(ctx))

	// start CLI
	cli := commandLine{
		usrRepo:     mongodb.NewUserRepository(db),
		textbookSvc: textbook.NewService(mongodb.NewTextbookRepository(db), core.NopRevalidator()),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
