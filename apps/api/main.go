package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/sahyadri/classai/apps/api/echo"
	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/assist"
	"github.com/sahyadri/classai/core/digest"
	"github.com/sahyadri/classai/core/lessonplan"
	"github.com/sahyadri/classai/core/student"
	"github.com/sahyadri/classai/core/textbook"
	"github.com/sahyadri/classai/core/timetable"
	"github.com/sahyadri/classai/core/user"
	emailsvc "github.com/sahyadri/classai/services/email"
	geminisvc "github.com/sahyadri/classai/services/gemini"
	logsvc "github.com/sahyadri/classai/services/logger"
	timesvc "github.com/sahyadri/classai/services/worldtime"
	"github.com/sahyadri/classai/storage/database/mongodb"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	dbCtx, dbCancel := context.WithTimeout(context.Background(), conf.Database.Timeout)
	defer dbCancel()

	db, err := mongodb.Open(dbCtx, conf.Database.URI, conf.Database.Name)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(context.Background()); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	if err = db.EnsureIndexes(dbCtx); err != nil {
		logger.Fatal(fmt.Sprintf("ensuring database indexes: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	reval := core.NopRevalidator()

	usrSvc := user.NewService(mongodb.NewUserRepository(db))
	textbookSvc := textbook.NewService(mongodb.NewTextbookRepository(db), reval)
	lessonPlanSvc := lessonplan.NewService(mongodb.NewLessonPlanRepository(db))
	studentSvc := student.NewService(mongodb.NewStudentRepository(db), logger, reval, textbookSvc, lessonPlanSvc)
	timetableSvc := timetable.NewService(mongodb.NewTimetableRepository(db), timesvc.NewClient(conf, logger), reval)
	assistSvc := assist.NewService(geminisvc.NewClient(conf, logger), logger, studentSvc, textbookSvc)
	digestSvc := digest.NewService(conf, logger, mailSvc, studentSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	timetable.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start Weekly Digest

	digestCtx, digestCancel := context.WithCancel(context.Background())
	defer digestCancel()
	if conf.Digest.Enabled {
		go digestSvc.Run(digestCtx)
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			UserSvc:       usrSvc,
			StudentSvc:    studentSvc,
			TimetableSvc:  timetableSvc,
			TextbookSvc:   textbookSvc,
			LessonPlanSvc: lessonPlanSvc,
			AssistSvc:     assistSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
